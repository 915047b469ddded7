package policy

// Permission names. The registry below is the single source of truth for
// what each name means; the documented permission matrix is derived from it.
const (
	ViewCase           = "view_case"
	CreateCase         = "create_case"
	ChangeCase         = "change_case"
	ChangeCaseState    = "change_case_state"
	ViewAudit          = "view_audit"
	ViewSource         = "view_source"
	ChangeSource       = "change_source"
	ManageContributors = "manage_contributors"
	ManageModerators   = "manage_moderators"
)

// registry binds permission names to predicates. It is built once and never
// mutated at runtime.
var registry = map[string]Predicate{
	ViewCase:           CanView,
	CreateCase:         CanCreateCase,
	ChangeCase:         CanEditContent,
	ChangeCaseState:    CanChangeState,
	ViewAudit:          CanView,
	ViewSource:         CanViewSource,
	ChangeSource:       CanChangeSource,
	ManageContributors: CanManageContributors,
	ManageModerators:   CanManageModerators,
}

// Lookup resolves a permission name to its predicate.
func Lookup(name string) (Predicate, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names lists every registered permission.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
