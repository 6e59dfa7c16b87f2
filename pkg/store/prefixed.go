// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package store

// Prefixed returns a view of st that namespaces every key, giving each
// component its own keyspace inside a shared database.
func Prefixed(st Store, prefix string) Store {
	return &prefixed{st: st, prefix: prefix + "."}
}

type prefixed struct {
	st     Store
	prefix string
}

func (p *prefixed) Get(key string, out any) (bool, error) {
	return p.st.Get(p.prefix+key, out)
}

func (p *prefixed) Put(key string, v any) error {
	return p.st.Put(p.prefix+key, v)
}

func (p *prefixed) DictGet(dict, key string, out any) (bool, error) {
	return p.st.DictGet(p.prefix+dict, key, out)
}

func (p *prefixed) DictPut(dict, key string, v any) error {
	return p.st.DictPut(p.prefix+dict, key, v)
}

func (p *prefixed) Close() error {
	return nil
}
