package index

// DocumentIndex defines the interface for metadata index operations.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type DocumentIndex interface {
	UpsertDocument(doc DocumentRow, body string) error
	DeleteDocument(slug string) error
	GetDocument(slug string) (*DocumentRow, error)
	ListDocuments(includeDrafts bool) ([]DocumentRow, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies DocumentIndex at compile time.
var _ DocumentIndex = (*DB)(nil)
