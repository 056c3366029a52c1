package state

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// FlagRecord is the serialized form of one persisted flag.
type FlagRecord struct {
	Value     string    `msgpack:"v"`
	UpdatedAt time.Time `msgpack:"u"`
}

// Flags persists small per-visitor string flags (the theme preference,
// for one) on top of any Store.
type Flags struct {
	store      Store
	serializer *MsgPackSerializer
	prefix     string
	ttl        time.Duration
}

// FlagsOption configures Flags.
type FlagsOption func(*Flags)

// WithFlagPrefix sets the key prefix.
func WithFlagPrefix(prefix string) FlagsOption {
	return func(f *Flags) {
		f.prefix = prefix
	}
}

// WithFlagTTL expires flags that are not rewritten within ttl.
func WithFlagTTL(ttl time.Duration) FlagsOption {
	return func(f *Flags) {
		f.ttl = ttl
	}
}

// NewFlags creates a flag store over store.
func NewFlags(store Store, opts ...FlagsOption) *Flags {
	f := &Flags{
		store:      store,
		serializer: NewMsgPackSerializer(),
		prefix:     "flag:",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Key returns the storage key for owner and slot.
func (f *Flags) Key(owner, slot string) string {
	return f.prefix + owner + ":" + slot
}

// GetFlag returns the stored value. Missing flags return ErrKeyNotFound.
func (f *Flags) GetFlag(ctx context.Context, owner, slot string) (string, error) {
	rec, err := f.Record(ctx, owner, slot)
	if err != nil {
		return "", err
	}
	return rec.Value, nil
}

// Record returns the full stored record.
func (f *Flags) Record(ctx context.Context, owner, slot string) (FlagRecord, error) {
	var rec FlagRecord
	if owner == "" || slot == "" {
		return rec, ErrKeyNotFound
	}

	data, err := f.store.Get(ctx, f.Key(owner, slot))
	if err != nil {
		return rec, err
	}
	if err := f.serializer.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return rec, nil
}

// SetFlag stores value, replacing any previous one.
func (f *Flags) SetFlag(ctx context.Context, owner, slot, value string) error {
	if owner == "" || slot == "" {
		return fmt.Errorf("%w: empty owner or slot", ErrInvalidData)
	}

	data, err := f.serializer.Marshal(FlagRecord{Value: value, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return f.store.Set(ctx, f.Key(owner, slot), data, f.ttl)
}

// Owners lists every owner holding slot.
func (f *Flags) Owners(ctx context.Context, slot string) ([]string, error) {
	keys, err := f.store.Keys(ctx, f.prefix+"*:"+slot)
	if err != nil {
		return nil, err
	}
	owners := make([]string, 0, len(keys))
	for _, k := range keys {
		owner := strings.TrimSuffix(strings.TrimPrefix(k, f.prefix), ":"+slot)
		owners = append(owners, owner)
	}
	return owners, nil
}
