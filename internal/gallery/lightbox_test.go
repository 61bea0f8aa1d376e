package gallery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	imgs := func(prefix string, n int) []Image {
		out := make([]Image, n)
		for i := range out {
			out[i] = Image{Src: prefix, Alt: prefix}
		}
		return out
	}
	return Catalog{
		{Key: "alpine", Images: imgs("alpine", 4)},
		{Key: "streams", Images: imgs("stream", 4)},
		{Key: "woodlands", Images: imgs("woodland", 3)},
		{Key: "empty"},
	}
}

func TestNextAndPrevWrapAround(t *testing.T) {
	cat := testCatalog()
	for c := 0; c < 3; c++ {
		n := cat.Len(c)
		for start := 0; start < n; start++ {
			lb := Opened(cat, c, start)
			for k := 0; k < n; k++ {
				lb.Next()
			}
			require.Equal(t, start, lb.Index, "next cycle c=%d start=%d", c, start)
			for k := 0; k < n; k++ {
				lb.Prev()
			}
			require.Equal(t, start, lb.Index, "prev cycle c=%d start=%d", c, start)
		}
	}
}

func TestOpenClampsIndex(t *testing.T) {
	cat := testCatalog()

	lb := Opened(cat, 0, 99)
	require.True(t, lb.Open)
	require.Equal(t, 3, lb.Index)

	lb = Opened(cat, 2, -5)
	require.True(t, lb.Open)
	require.Equal(t, 0, lb.Index)
}

func TestOpenEmptyOrUnknownCategoryIsNoop(t *testing.T) {
	cat := testCatalog()
	for _, c := range []int{3, 4, -1} {
		lb := Opened(cat, c, 0)
		require.False(t, lb.Open, "category %d", c)
	}
}

func TestFullCycleOnSecondCategory(t *testing.T) {
	lb := Opened(testCatalog(), 1, 0)
	for i := 0; i < 3; i++ {
		lb.Next()
	}
	require.Equal(t, 3, lb.Index)
	lb.Next()
	require.Equal(t, 0, lb.Index)
}

func TestNavigationWhileClosedIsHarmless(t *testing.T) {
	var lb Lightbox
	require.NotPanics(t, func() {
		lb.Next()
		lb.Prev()
	})
	require.False(t, lb.Open)

	lb = Opened(testCatalog(), 0, 1)
	lb.Close()
	lb.Next()
	require.False(t, lb.Open)
	require.Equal(t, 2, lb.Index)
}

func TestHandleKey(t *testing.T) {
	lb := Opened(testCatalog(), 0, 0)
	require.True(t, lb.HandleKey(KeyArrowLeft))
	require.Equal(t, 3, lb.Index)
	require.True(t, lb.HandleKey(KeyArrowRight))
	require.Equal(t, 0, lb.Index)
	require.False(t, lb.HandleKey("Enter"))
	require.True(t, lb.HandleKey(KeyEscape))
	require.False(t, lb.Open)
	require.False(t, lb.HandleKey(KeyArrowRight))
	require.Equal(t, 0, lb.Index)
}

func TestKeyBindingsDoNotMutate(t *testing.T) {
	lb := Opened(testCatalog(), 0, 0)
	b := lb.KeyBindings()
	require.Len(t, b, 3)
	require.False(t, b[0].Result.Open)
	require.Equal(t, 1, b[1].Result.Index)
	require.Equal(t, 3, b[2].Result.Index)
	require.True(t, lb.Open)
	require.Equal(t, 0, lb.Index)

	var closed Lightbox
	require.Empty(t, closed.KeyBindings())
}

func TestWrap(t *testing.T) {
	require.Equal(t, 3, Wrap(-1, 4))
	require.Equal(t, 0, Wrap(4, 4))
	require.Equal(t, 2, Wrap(10, 4))
}
