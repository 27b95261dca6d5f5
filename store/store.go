package store

type Store interface {
	Mirror() MirrorStore
	Close() error
}

// MirrorStore records which upstream issues have already been mirrored into
// the fork. An identifier is in the store if and only if a mirrored issue was
// created for it, so membership checks make the sweep idempotent.
type MirrorStore interface {
	Contains(upstreamNumber int) (bool, error)
	Add(upstreamNumber int) error
	List() ([]int, error)
}
