package usecase

import (
	"context"
	"log"

	"github.com/fadilmartias/pathfinder/internal/repository"
	"github.com/fadilmartias/pathfinder/internal/service"
)

type ImportReport struct {
	Questions    int  `json:"questions"`
	Institutions int  `json:"institutions"`
	DryRun       bool `json:"dry_run"`
}

type CatalogUsecase struct {
	questionRepo    repository.QuestionRepositoryInterface
	institutionRepo repository.InstitutionRepositoryInterface
	importer        service.CatalogImportServiceInterface
}

func NewCatalogUsecase(
	questionRepo repository.QuestionRepositoryInterface,
	institutionRepo repository.InstitutionRepositoryInterface,
	importer service.CatalogImportServiceInterface,
) *CatalogUsecase {
	return &CatalogUsecase{
		questionRepo:    questionRepo,
		institutionRepo: institutionRepo,
		importer:        importer,
	}
}

// Import loads and validates a catalog document, then upserts it unless
// dryRun is set. Nothing is written when validation fails.
func (uc *CatalogUsecase) Import(ctx context.Context, source string, dryRun bool) (*ImportReport, error) {
	catalog, err := uc.importer.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{
		Questions:    len(catalog.Questions),
		Institutions: len(catalog.Institutions),
		DryRun:       dryRun,
	}
	if dryRun {
		log.Printf("catalog: dry run of %s validated %d questions and %d institutions", source, report.Questions, report.Institutions)
		return report, nil
	}

	if len(catalog.Questions) > 0 {
		if err := uc.questionRepo.Upsert(ctx, catalog.Questions); err != nil {
			return nil, err
		}
	}
	if len(catalog.Institutions) > 0 {
		if err := uc.institutionRepo.Upsert(ctx, catalog.Institutions); err != nil {
			return nil, err
		}
	}

	log.Printf("catalog: imported %d questions and %d institutions from %s", report.Questions, report.Institutions, source)
	return report, nil
}
