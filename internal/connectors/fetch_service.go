package connectors

import (
	"bytes"
	"strings"

	"github.com/jhillyerd/enmime"

	"kondate/internal/storage"
)

type FetchService struct {
	db        *storage.DB
	connector MailConnector
	store     *SlipStoreService
}

type FetchResult struct {
	Fetched int
	Stored  int
}

func NewFetchService(db *storage.DB, inboxDir string, connector MailConnector) *FetchService {
	return &FetchService{
		db:        db,
		connector: connector,
		store:     NewSlipStoreService(db, inboxDir),
	}
}

// FetchAndStore pulls vendor mail and journals every PDF attachment. Other
// attachment types and attachment-free messages are ignored; the vendor's
// delivery schedule only ever arrives as a PDF.
func (s *FetchService) FetchAndStore(label string, max int) (FetchResult, error) {
	messages, err := s.connector.FetchInbox(label, max)
	if err != nil {
		return FetchResult{}, err
	}

	stored := 0
	for _, msg := range messages {
		env, err := enmime.ReadEnvelope(bytes.NewReader(msg.Raw))
		if err != nil {
			continue
		}
		for _, att := range env.Attachments {
			filename := strings.TrimSpace(att.FileName)
			if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
				continue
			}
			if _, err := s.store.StoreAttachment(msg, filename, att.Content); err != nil {
				return FetchResult{}, err
			}
			stored++
		}
	}

	return FetchResult{Fetched: len(messages), Stored: stored}, nil
}
