// Package util provides small string helpers.
package util

import (
	"strings"
	"sync"
)

// LCase lowercases s.
func LCase[T ~string](s T) T { return T(strings.ToLower(string(s))) }

// Redact hides the password part of a "user:password" userinfo string.
func Redact(userinfo string) string {
	if i := strings.IndexByte(userinfo, ':'); i >= 0 {
		return userinfo[:i+1] + "xxxxx"
	}
	return userinfo
}

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(256)
		return sb
	},
}

func GetStringBuilder() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

func FreeStringBuilder(sb *strings.Builder) {
	sb.Reset()
	strBldrPool.Put(sb)
}
