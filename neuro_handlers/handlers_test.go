package neuro_handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowTiesKeepsEveryWinner(t *testing.T) {
	p := AllowTiesPolicy{}
	assert.Equal(t, []int{8}, p.ResolveSelection([]int{8}))
	assert.Equal(t, []int{3, 8}, p.ResolveSelection([]int{3, 8}))
}

func TestRejectTiesDropsTiedWinners(t *testing.T) {
	p := RejectTiesPolicy{}
	assert.Equal(t, []int{8}, p.ResolveSelection([]int{8}))
	assert.Nil(t, p.ResolveSelection([]int{3, 8}))
	assert.Nil(t, p.ResolveSelection([]int{1, 2, 3}))
}
