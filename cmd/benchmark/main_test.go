package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseThreadCounts(t *testing.T) {
	assert.Equal(t, []int{1, 2, 4, 8}, parseThreadCounts("1,2,4,8"))
	assert.Equal(t, []int{3}, parseThreadCounts("3"))
	assert.Equal(t, []int{16, 2}, parseThreadCounts(" 16 , 2 "))
}
