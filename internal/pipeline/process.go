package pipeline

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kondate/internal"
	"kondate/internal/blob"
	"kondate/internal/config"
	"kondate/internal/stock"
	"kondate/internal/storage"
)

type ProcessingService struct {
	db    *storage.DB
	store blob.Store
	cfg   config.Config
}

func NewProcessingService(db *storage.DB, store blob.Store, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, store: store, cfg: cfg}
}

type ProcessResult struct {
	BaseName  string
	SlipCount int
	ItemCount int
	Skipped   bool
}

// ProcessFile journals a local PDF (or plain-text fragment file) and parses
// it into the delivery-set artifact. An empty baseName derives one from the
// file stem plus a content-hash suffix, so re-ingesting the same bytes maps
// to the same document.
func (s *ProcessingService) ProcessFile(inputPath, baseName string) (ProcessResult, error) {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return ProcessResult{}, err
	}
	hashBytes := sha256.Sum256(raw)
	hash := hex.EncodeToString(hashBytes[:])
	if baseName == "" {
		baseName = DeriveBaseName(inputPath, hash)
	}

	row, err := s.db.UpsertDocument(baseName, string(internal.SourceFile), inputPath, hash, inputPath, "fetched")
	if err != nil {
		return ProcessResult{}, err
	}
	return s.ProcessDocument(row)
}

// ProcessPending parses journaled documents still in the fetched state,
// typically mail-borne PDFs stored by the fetch service.
func (s *ProcessingService) ProcessPending(limit int) (int, int, error) {
	pending, err := s.db.ListDocumentsByStatus("fetched", limit)
	if err != nil {
		return 0, 0, err
	}
	processed := 0
	skipped := 0
	for _, row := range pending {
		res, err := s.ProcessDocument(row)
		if err != nil {
			return processed, skipped, err
		}
		if res.Skipped {
			skipped++
			continue
		}
		processed++
	}
	return processed, skipped, nil
}

func (s *ProcessingService) ProcessDocument(row internal.DocumentRow) (ProcessResult, error) {
	start := time.Now()

	lines, err := ExtractFileLines(row.RawRef)
	if err != nil {
		_ = s.db.UpdateDocumentStatus(row.BaseName, "failed")
		return ProcessResult{}, err
	}

	normalized := NormalizeLines(lines)
	detect := DetectDeliverySchedule(normalized)
	if !detect.IsDeliverySchedule {
		_ = s.db.UpdateDocumentStatus(row.BaseName, "skipped")
		_ = s.db.InsertRun(traceID(), row.BaseName,
			map[string]float64{"totalMs": float64(time.Since(start).Milliseconds()), "detectScore": detect.Score},
			map[string]int{"lines": len(normalized), "slips": 0, "items": 0})
		return ProcessResult{BaseName: row.BaseName, Skipped: true}, nil
	}

	doc := ParseDeliveryDocument(lines)
	itemCount := 0
	for _, slip := range doc.Slips {
		itemCount += len(slip.Items)
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ProcessResult{}, err
	}
	if err := s.store.Put(blob.DeliverySetPath(s.cfg.Account, row.BaseName), payload); err != nil {
		_ = s.db.UpdateDocumentStatus(row.BaseName, "failed")
		return ProcessResult{}, err
	}

	if err := s.db.UpdateDocumentCounts(row.BaseName, len(doc.Slips), itemCount, "parsed"); err != nil {
		return ProcessResult{}, err
	}
	_ = s.db.InsertRun(traceID(), row.BaseName,
		map[string]float64{"totalMs": float64(time.Since(start).Milliseconds()), "detectScore": detect.Score},
		map[string]int{"lines": len(normalized), "slips": len(doc.Slips), "items": itemCount})

	return ProcessResult{BaseName: row.BaseName, SlipCount: len(doc.Slips), ItemCount: itemCount}, nil
}

// ApplyParsed loads the stored delivery set and folds it into stock via the
// create-only marker. The journal status ends at "applied" either way; the
// caller distinguishes the outcomes through the returned status.
func (s *ProcessingService) ApplyParsed(stockSvc *stock.Service, baseName string) (internal.ApplyResult, error) {
	data, err := s.store.Get(blob.DeliverySetPath(s.cfg.Account, baseName))
	if err != nil {
		return internal.ApplyResult{}, err
	}
	doc, err := stock.DecodeDocument(data)
	if err != nil {
		return internal.ApplyResult{}, fmt.Errorf("decode delivery set %s: %w", baseName, err)
	}

	result, err := stockSvc.ApplyDeliverySet(baseName, doc)
	if err != nil {
		return internal.ApplyResult{}, err
	}
	_ = s.db.UpdateDocumentStatus(baseName, "applied")
	return result, nil
}

// ApplyPending applies every parsed document that has not been folded in.
func (s *ProcessingService) ApplyPending(stockSvc *stock.Service, limit int) (int, error) {
	parsed, err := s.db.ListDocumentsByStatus("parsed", limit)
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, row := range parsed {
		result, err := s.ApplyParsed(stockSvc, row.BaseName)
		if err != nil {
			return applied, err
		}
		if result.Status == internal.ApplyApplied {
			applied++
		}
	}
	return applied, nil
}

func DeriveBaseName(inputPath, hash string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	repl := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "|", "_", "?", "_", "*", "_", "<", "_", ">", "_")
	stem = repl.Replace(stem)
	if len(stem) > 80 {
		stem = stem[:80]
	}
	suffix := hash
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return stem + "-" + suffix
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
