package usecase

import (
	"context"

	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/policy"
)

// SourceUsecase reads the source store, gated by view_source.
type SourceUsecase struct {
	repo  SourceRepository
	authz *Authz
}

func NewSourceUsecase(repo SourceRepository, authz *Authz) *SourceUsecase {
	return &SourceUsecase{repo: repo, authz: authz}
}

func (uc *SourceUsecase) Get(ctx context.Context, actor *domain.Actor, id string) (domain.Source, error) {
	if err := uc.authz.Authorize(ctx, actor, policy.ViewSource, nil, ""); err != nil {
		return domain.Source{}, err
	}
	src, err := uc.repo.Get(ctx, id)
	if err != nil {
		return domain.Source{}, err
	}
	if src.IsDeleted {
		return domain.Source{}, domain.NotFoundError{Resource: "source"}
	}
	return src, nil
}
