//go:build nodocconv

package document

func registerDocconv(*Registry, bool) {}
