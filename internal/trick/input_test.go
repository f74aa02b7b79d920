package trick

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		name string
		keys Keys
		want Direction
	}{
		{"nothing", Keys{}, DirNone},
		{"up", Keys{Up: true}, DirUp},
		{"right", Keys{Right: true}, DirRight},
		{"down", Keys{Down: true}, DirDown},
		{"left", Keys{Left: true}, DirLeft},
		{"up+right", Keys{Up: true, Right: true}, DirRight},
		{"right+down", Keys{Right: true, Down: true}, DirDown},
		{"down+left", Keys{Down: true, Left: true}, DirLeft},
		{"left+up", Keys{Left: true, Up: true}, DirUp},
		{"up+down", Keys{Up: true, Down: true}, DirUp},
		{"left+right", Keys{Left: true, Right: true}, DirRight},
		{"three keys", Keys{Up: true, Right: true, Down: true}, DirDown},
		{"all four", Keys{Up: true, Right: true, Down: true, Left: true}, DirUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDirection(tt.keys))
		})
	}
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "up", DirUp.String())
	assert.Equal(t, "left", DirLeft.String())
	assert.Equal(t, "none", DirNone.String())
	assert.Equal(t, "none", Direction(42).String())
}

func TestCatalogSlots(t *testing.T) {
	cat := DefaultCatalog()
	assert.NoError(t, cat.Validate())

	assert.Equal(t, 4, cat.flipIndex(DirNone, true))
	assert.Equal(t, 0, cat.flipIndex(DirNone, false))
	assert.Equal(t, 2, cat.grabIndex(DirDown, true))

	cat.Flips = cat.Flips[:4]
	assert.Equal(t, 0, cat.flipIndex(DirNone, true), "no variant in a four-entry catalog")
	assert.Equal(t, 0, cat.flipIndex(Direction(-1), true))
}
