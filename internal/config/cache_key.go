package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuizSessionKey returns the cache key for the quiz attempt of a browser session
func (r *CacheKeyStruct) QuizSessionKey(sessionID string) string {
	return fmt.Sprintf("quiz:session:%s", sessionID)
}

// AdminGrantKey returns the cache key marking a browser session as logged-in admin
func (r *CacheKeyStruct) AdminGrantKey(sessionID string) string {
	return fmt.Sprintf("quiz:admin:%s", sessionID)
}

var CacheKey = NewCacheKeyStruct()
