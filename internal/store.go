package internal

// Store reads raw records from the keyed store. Each load opens its own
// read-only handle and releases it before returning; nothing is cached
// across calls.
type Store struct {
	path string
}

// NewStore creates a Store for the given database path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the database path backing this store
func (s *Store) Path() string {
	return s.path
}

// LoadRecords reads every conversation row and wraps it as a RawRecord in
// stable rowid order. Connection-level failures are returned as StoreError;
// there is no per-row failure mode here because rows are opaque blobs until
// normalization.
func (s *Store) LoadRecords() ([]*RawRecord, error) {
	db, err := OpenDatabase(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := QueryConversations(db)
	if err != nil {
		return nil, &StoreError{Path: s.path, Op: "query", Err: err}
	}

	records := make([]*RawRecord, 0, len(rows))
	for _, row := range rows {
		workspace, id := ParseStoreKey(row.Key)
		records = append(records, &RawRecord{
			Key:       row.Key,
			ID:        id,
			Workspace: workspace,
			Content:   []byte(row.Value),
			Ordinal:   row.Ordinal,
			Source:    SourceStore,
		})
	}

	return records, nil
}
