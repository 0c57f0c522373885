package memory_test

import (
	"testing"

	"github.com/aretw0/stateprop/pkg/adapters/memory"
	"github.com/aretw0/stateprop/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunCounterexampleStoreContract(t, store)
}
