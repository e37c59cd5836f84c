package listener

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"kondate/internal/blob"
	"kondate/internal/config"
	"kondate/internal/connectors"
	gmailconnector "kondate/internal/connectors/gmail"
	imapconnector "kondate/internal/connectors/imap"
	"kondate/internal/pipeline"
	"kondate/internal/stock"
	"kondate/internal/storage"
)

type Service struct {
	db    *storage.DB
	store blob.Store
	cfg   config.Config
}

func NewService(db *storage.DB, store blob.Store, cfg config.Config) *Service {
	return &Service{db: db, store: store, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(ctx); err != nil {
			fmt.Printf("watcher cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.WatcherIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.WatcherProvider))
	mailConnector, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	fetchService := connectors.NewFetchService(s.db, s.cfg.InboxDir, mailConnector)
	fetchResult, err := fetchService.FetchAndStore(s.cfg.WatcherLabel, s.cfg.WatcherFetchMax)
	if err != nil {
		return err
	}

	processor := pipeline.NewProcessingService(s.db, s.store, s.cfg)
	processed, skipped, err := processor.ProcessPending(s.cfg.WatcherProcessBatch)
	if err != nil {
		return err
	}

	applied := 0
	if s.cfg.WatcherAutoApply {
		stockSvc := stock.NewService(s.store, s.cfg.Account)
		applied, err = processor.ApplyPending(stockSvc, s.cfg.WatcherProcessBatch)
		if err != nil {
			return err
		}
		if s.cfg.WatcherAutoExport && applied > 0 {
			if err := s.exportStock(stockSvc); err != nil {
				return err
			}
		}
	}

	fmt.Printf("watcher cycle done provider=%s fetched=%d stored=%d processed=%d skipped=%d applied=%d\n",
		provider, fetchResult.Fetched, fetchResult.Stored, processed, skipped, applied)
	_ = ctx
	return nil
}

func (s *Service) exportStock(stockSvc *stock.Service) error {
	snapshot, err := stockSvc.Snapshot()
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("stock_%s.xlsx", time.Now().Format("20060102_150405"))
	outputPath := filepath.Join(s.cfg.OutputDir, "watcher", filename)
	return pipeline.ExportStockXLSX(snapshot.Items, outputPath)
}

func (s *Service) makeConnector(provider string) (connectors.MailConnector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported watcher provider: %s", provider)
	}
}
