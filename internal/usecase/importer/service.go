package importer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
)

// DefaultFetchWorkers bounds the per-account holdings fetch fan-out.
const DefaultFetchWorkers = 4

// ImportService materializes externally-fetched brokerage holdings as
// asset records. The write path is best-effort: one insert per holding,
// no transaction around the batch, no dedup key, so re-running an import
// duplicates records.
type ImportService struct {
	Linking      domain.LinkingService
	AssetRepo    domain.AssetRepository
	CategoryRepo domain.CategoryRepository

	// FetchWorkers caps concurrent per-account holdings fetches.
	// Zero means DefaultFetchWorkers.
	FetchWorkers int
}

// NewImportService creates a new ImportService instance
func NewImportService(
	linking domain.LinkingService,
	assetRepo domain.AssetRepository,
	categoryRepo domain.CategoryRepository,
) *ImportService {
	return &ImportService{
		Linking:      linking,
		AssetRepo:    assetRepo,
		CategoryRepo: categoryRepo,
	}
}

// ImportHoldings completes the import half of the linking round trip
// Logic:
//  1. List the user's brokerage accounts and gather every account's
//     holdings (bounded fan-out; a failed account fetch is logged and
//     skipped, a failed account list is fatal)
//  2. Resolve the investments category by slug
//  3. Insert one asset per holding; a failed insert is logged and
//     skipped so one bad record does not block the rest
//
// Returns the number of assets actually inserted.
func (s *ImportService) ImportHoldings(ctx context.Context, userID uuid.UUID) (int, error) {
	holdings, err := s.fetchAllHoldings(ctx, userID.String())
	if err != nil {
		return 0, err
	}
	log.Printf("retrieved %d holdings for user %s", len(holdings), userID)

	category, err := s.CategoryRepo.GetBySlug(ctx, domain.CategoryInvestments)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	imported := 0
	for _, holding := range holdings {
		asset := holding.ToAsset(userID, category.ID, now)
		if err := s.AssetRepo.Create(ctx, asset); err != nil {
			log.Printf("failed to insert asset %s: %v", holding.Symbol, err)
			continue
		}
		imported++
	}
	return imported, nil
}

// fetchAllHoldings lists accounts and flattens their holdings into one
// sequence. Per-account fetches run on a fixed worker pool.
func (s *ImportService) fetchAllHoldings(ctx context.Context, userID string) ([]domain.Holding, error) {
	accounts, err := s.Linking.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	workers := s.FetchWorkers
	if workers <= 0 {
		workers = DefaultFetchWorkers
	}
	if workers > len(accounts) {
		workers = len(accounts)
	}
	if len(accounts) == 0 {
		return nil, nil
	}

	jobs := make(chan domain.BrokerageAccount)
	results := make(chan []domain.Holding, len(accounts))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for account := range jobs {
				holdings, err := s.Linking.ListHoldings(ctx, account.ID)
				if err != nil {
					log.Printf("failed to fetch holdings for account %s: %v", account.ID, err)
					continue
				}
				results <- holdings
			}
		}()
	}

	for _, account := range accounts {
		select {
		case jobs <- account:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	var all []domain.Holding
	for holdings := range results {
		all = append(all, holdings...)
	}
	return all, nil
}
