package internal

type DocumentSource string

const (
	SourceFile  DocumentSource = "file"
	SourceGmail DocumentSource = "gmail"
	SourceIMAP  DocumentSource = "imap"
)

type ReportMeta struct {
	Title     *string `json:"title,omitempty"`
	OutputAt  *string `json:"outputAt,omitempty"`
	RangeFrom *string `json:"rangeFrom,omitempty"`
	RangeTo   *string `json:"rangeTo,omitempty"`
}

type SlipItem struct {
	No           *int     `json:"no,omitempty"`
	Code         *string  `json:"code,omitempty"`
	Name         string   `json:"name"`
	UnitPrice    float64  `json:"unitPrice"`
	DeliveryQty  float64  `json:"deliveryQty"`
	DeliveryUnit string   `json:"deliveryUnit"`
	Spec         *string  `json:"spec,omitempty"`
	OrderQty     *float64 `json:"orderQty,omitempty"`
	OrderUnit    *string  `json:"orderUnit,omitempty"`
}

type Slip struct {
	SlipNo       string     `json:"slipNo"`
	Vendor       *string    `json:"vendor,omitempty"`
	SlipDate     *string    `json:"slipDate,omitempty"`
	DeliveryDate *string    `json:"deliveryDate,omitempty"`
	Total        *float64   `json:"total,omitempty"`
	Comment      *string    `json:"comment,omitempty"`
	Items        []SlipItem `json:"items"`
}

type DeliveryDocument struct {
	Report ReportMeta `json:"report"`
	Slips  []Slip     `json:"slips"`
}

// DeltaRecord is the net quantity change one document contributes for one
// ingredient key. Name and Unit keep the first spelling seen; keying uses
// the normalized forms.
type DeltaRecord struct {
	Vendor   string
	Name     string
	Unit     string
	Quantity float64
}

type SnapshotMeta struct {
	Version   int     `json:"version"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type StockItem struct {
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Vendor    string  `json:"vendor,omitempty"`
	Quantity  float64 `json:"quantity"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type StockSnapshot struct {
	Meta  SnapshotMeta `json:"_meta"`
	Items []StockItem  `json:"items"`
}

// AppliedMarker body is informational; only the object's existence gates
// re-application of the same base name.
type AppliedMarker struct {
	BaseName  string `json:"baseName"`
	AppliedAt string `json:"appliedAt"`
	SlipCount int    `json:"slipCount"`
	ItemCount int    `json:"itemCount"`
}

type ApplyStatus string

const (
	ApplyApplied        ApplyStatus = "applied"
	ApplyAlreadyApplied ApplyStatus = "already_applied"
)

type ApplyResult struct {
	Status     ApplyStatus `json:"status"`
	AddedCount int         `json:"addedCount,omitempty"`
}

type DocumentRow struct {
	ID        int
	BaseName  string
	Source    string
	SourceRef string
	Hash      string
	Status    string
	SlipCount int
	ItemCount int
	RawRef    string
	CreatedAt string
	UpdatedAt string
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}
