package stock

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"kondate/internal"
	"kondate/internal/blob"
	"kondate/internal/util"
)

var ErrItemNotFound = errors.New("stock item not found")

// Service reconciles delivery documents into the per-account stock
// snapshot. The create-only marker write is the only concurrency control:
// it protects against re-applying the same base name, nothing more. The
// snapshot read-modify-write assumes a single writer per account.
type Service struct {
	store   blob.Store
	account string
	now     func() time.Time
}

func NewService(store blob.Store, account string) *Service {
	return &Service{store: store, account: account, now: time.Now}
}

// ApplyDeliverySet folds one parsed document into stock exactly once.
// Marker first, stock second: a crash in between undercounts (marker with
// no stock change, fixable by hand) instead of ever double-counting.
func (s *Service) ApplyDeliverySet(baseName string, doc internal.DeliveryDocument) (internal.ApplyResult, error) {
	deltas := Aggregate(doc)
	itemCount := 0
	for _, slip := range doc.Slips {
		itemCount += len(slip.Items)
	}
	now := s.now().UTC().Format(time.RFC3339)

	marker := internal.AppliedMarker{
		BaseName:  baseName,
		AppliedAt: now,
		SlipCount: len(doc.Slips),
		ItemCount: itemCount,
	}
	body, err := json.Marshal(marker)
	if err != nil {
		return internal.ApplyResult{}, err
	}

	markerPath := blob.MarkerPath(s.account, baseName)
	if err := s.store.Create(markerPath, body); err != nil {
		if errors.Is(err, blob.ErrExists) {
			return internal.ApplyResult{Status: internal.ApplyAlreadyApplied}, nil
		}
		return internal.ApplyResult{}, err
	}

	snap, err := s.loadSnapshot()
	if err != nil {
		_ = s.store.Delete(markerPath)
		return internal.ApplyResult{}, err
	}

	snap.Items = Merge(snap.Items, deltas, now)
	snap.Meta = internal.SnapshotMeta{Version: 1, UpdatedAt: util.StringPtr(now)}
	if err := s.saveSnapshot(snap); err != nil {
		_ = s.store.Delete(markerPath)
		return internal.ApplyResult{}, err
	}

	return internal.ApplyResult{Status: internal.ApplyApplied, AddedCount: len(deltas)}, nil
}

// AdjustItem applies a manual consumption/restock delta to an existing
// stock item. Only delivery application creates keys; a miss is
// ErrItemNotFound.
func (s *Service) AdjustItem(name, unit, vendor string, delta float64) (internal.StockItem, error) {
	snap, err := s.loadSnapshot()
	if err != nil {
		return internal.StockItem{}, err
	}

	k := keyOf(vendor, name, unit)
	at := -1
	for i, item := range snap.Items {
		if keyOf(item.Vendor, item.Name, item.Unit) == k {
			at = i
			break
		}
	}
	if at < 0 {
		return internal.StockItem{}, fmt.Errorf("%s/%s/%s: %w", vendor, name, unit, ErrItemNotFound)
	}

	now := s.now().UTC().Format(time.RFC3339)
	snap.Items[at].Quantity = clampZero(snap.Items[at].Quantity + delta)
	snap.Items[at].UpdatedAt = util.StringPtr(now)
	snap.Meta = internal.SnapshotMeta{Version: 1, UpdatedAt: util.StringPtr(now)}

	if err := s.saveSnapshot(snap); err != nil {
		return internal.StockItem{}, err
	}
	return snap.Items[at], nil
}

func (s *Service) Snapshot() (internal.StockSnapshot, error) {
	return s.loadSnapshot()
}

// AppliedMarkers lists every apply marker for the account, oldest path
// first. Unreadable marker bodies are returned with the base name only.
func (s *Service) AppliedMarkers() ([]internal.AppliedMarker, error) {
	infos, err := s.store.List(blob.MarkerPrefix(s.account))
	if err != nil {
		return nil, err
	}
	out := make([]internal.AppliedMarker, 0, len(infos))
	for _, info := range infos {
		var marker internal.AppliedMarker
		data, err := s.store.Get(info.Name)
		if err != nil || json.Unmarshal(data, &marker) != nil {
			marker = internal.AppliedMarker{BaseName: strings.TrimSuffix(path.Base(info.Name), ".json")}
		}
		out = append(out, marker)
	}
	return out, nil
}

// loadSnapshot treats a missing object as empty stock; a present but
// unreadable snapshot is a fatal read error.
func (s *Service) loadSnapshot() (internal.StockSnapshot, error) {
	data, err := s.store.Get(blob.SnapshotPath(s.account))
	if errors.Is(err, blob.ErrNotFound) {
		return internal.StockSnapshot{Meta: internal.SnapshotMeta{Version: 1}, Items: []internal.StockItem{}}, nil
	}
	if err != nil {
		return internal.StockSnapshot{}, err
	}

	var snap internal.StockSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return internal.StockSnapshot{}, fmt.Errorf("corrupt stock snapshot: %w", err)
	}
	if snap.Items == nil {
		snap.Items = []internal.StockItem{}
	}
	return snap, nil
}

func (s *Service) saveSnapshot(snap internal.StockSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return s.store.Put(blob.SnapshotPath(s.account), data)
}
