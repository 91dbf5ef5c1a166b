package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuizCanonicalKey returns the cache key for a quiz's canonical bilingual JSON
func (r *CacheKeyStruct) QuizCanonicalKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:canonical", quizID)
}

// ImportJobStatusKey returns the cache key holding a bulk import job's status
func (r *CacheKeyStruct) ImportJobStatusKey(jobID string) string {
	return fmt.Sprintf("import:%s:status", jobID)
}

var CacheKey = NewCacheKeyStruct()
