// Package driver holds the errors shared by cache drivers.
package driver

import "errors"

var (
	ErrKeyNotFound  = errors.New("cache: key not found")
	ErrLimitReached = errors.New("cache: limit reached")
	ErrUnsafeClear  = errors.New("cache: refusing to clear without a key prefix")
)

// JoinPrefix combines namespace and key prefix as "namespace:prefix".
func JoinPrefix(namespace, prefix string) string {
	if namespace == "" {
		return prefix
	}
	return namespace + ":" + prefix
}
