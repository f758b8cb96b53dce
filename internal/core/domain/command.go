package domain

import "strings"

// sensitiveCommands carry authentication material and are always sent
// uncompressed. Keys are lower case.
var sensitiveCommands = map[string]struct{}{
	"ismaster":        {},
	"saslstart":       {},
	"saslcontinue":    {},
	"getnonce":        {},
	"authenticate":    {},
	"createuser":      {},
	"updateuser":      {},
	"copydbsaslstart": {},
	"copydbgetnonce":  {},
	"copydb":          {},
}

// IsSensitiveCommand reports whether the command must never be compressed.
// The comparison ignores letter case.
func IsSensitiveCommand(name string) bool {
	_, ok := sensitiveCommands[strings.ToLower(name)]
	return ok
}
