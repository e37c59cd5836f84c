package connectors

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"kondate/internal"
	"kondate/internal/storage"
)

// SlipStoreService writes one mail-borne PDF attachment to the inbox
// directory (hash-named, so redelivered mail is a no-op on disk) and
// journals it for the parser. The base name derives from the attachment
// filename plus a content-hash suffix; the same bytes always map to the
// same document.
type SlipStoreService struct {
	db       *storage.DB
	inboxDir string
}

func NewSlipStoreService(db *storage.DB, inboxDir string) *SlipStoreService {
	return &SlipStoreService{db: db, inboxDir: inboxDir}
}

func (s *SlipStoreService) StoreAttachment(msg internal.FetchedMailMessage, filename string, content []byte) (internal.DocumentRow, error) {
	hashBytes := sha256.Sum256(content)
	hash := hex.EncodeToString(hashBytes[:])

	if err := os.MkdirAll(s.inboxDir, 0o755); err != nil {
		return internal.DocumentRow{}, err
	}

	rawPath := filepath.Join(s.inboxDir, hash+".pdf")
	if _, err := os.Stat(rawPath); os.IsNotExist(err) {
		if err := os.WriteFile(rawPath, content, 0o644); err != nil {
			return internal.DocumentRow{}, err
		}
	}

	baseName := attachmentBaseName(filename, hash)
	sourceRef := msg.MessageID + "/" + filename
	// the upsert never resets status, so a redelivered attachment that was
	// already parsed or applied stays that way
	return s.db.UpsertDocument(baseName, msg.Provider, sourceRef, hash, rawPath, "fetched")
}

func attachmentBaseName(filename, hash string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	repl := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "|", "_", "?", "_", "*", "_", "<", "_", ">", "_")
	stem = repl.Replace(stem)
	if stem == "" {
		stem = "attachment"
	}
	if len(stem) > 80 {
		stem = stem[:80]
	}
	return stem + "-" + hash[:8]
}
