package repository

// Tx is an opaque handle for an optional database transaction. Repositories
// accept it alongside the context and detect the concrete type (e.g. pgx.Tx)
// implementation-side; a nil Tx selects the non-transactional path. The
// pipeline itself only performs single-record writes, so use cases pass nil.
type Tx interface{}
