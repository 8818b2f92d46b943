package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// GetIDList deserializes a list of offer identifiers stored by the given key.
// Returns an empty list if nothing is stored yet.
func GetIDList(ctx storage.Context, key interface{}) []int {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).([]int)
	}

	return []int{}
}

// AppendID appends an offer identifier to the list stored by the given key.
// Lists are append-only, entries are never removed.
func AppendID(ctx storage.Context, key interface{}, id int) {
	list := GetIDList(ctx, key)
	list = append(list, id)
	SetSerialized(ctx, key, list)
}

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key interface{}, value interface{}) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}
