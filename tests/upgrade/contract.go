/*
Package upgrade is a stand-in next version of the Middleman contract. It is
never deployed on its own, tests feed it to the update method to check that
contract storage survives the migration.
*/
package upgrade

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const counterKey = "offersCount"

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if !isUpdate {
		panic("fresh deploy of the upgrade stand-in is not expected")
	}

	runtime.Log("middleman contract migrated")
}

// GetOffersCount returns the identifier that will be assigned to the next
// created offer, read from the storage left by the previous version.
func GetOffersCount() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, counterKey).(int)
}
