package badger

// Key prefix for cached documents. Everything the cache writes lives under it
// so Clear can drop the whole range at once.
const documentPrefix = "doc:"

// makeDocumentKey generates the storage key for a cache key.
// Format: prefix + key
func makeDocumentKey(key string) []byte {
	buf := make([]byte, len(documentPrefix)+len(key))
	offset := copy(buf, documentPrefix)
	copy(buf[offset:], key)
	return buf
}
