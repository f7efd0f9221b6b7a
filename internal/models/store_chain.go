package models

// StoreChain is the code of a retail chain known to the price service.
type StoreChain string

var storeChains = []StoreChain{
	"plodine", "tommy", "konzum", "lidl", "studenac", "spar", "kaufland", "metro",
	"eurospin", "jadranka_trgovina", "dm", "ktc", "trgocentar", "vrutak", "zabac",
	"ntl", "ribola", "roto", "boso", "brodokomerc", "trgovina-krk", "lorenco",
}

var storeChainSet = func() map[StoreChain]struct{} {
	m := make(map[StoreChain]struct{}, len(storeChains))
	for _, c := range storeChains {
		m[c] = struct{}{}
	}
	return m
}()

// StoreChains returns every known chain code in display order.
func StoreChains() []StoreChain {
	out := make([]StoreChain, len(storeChains))
	copy(out, storeChains)
	return out
}

func (c StoreChain) IsValid() bool {
	_, ok := storeChainSet[c]
	return ok
}
