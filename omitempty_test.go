package clausewitz_test

import (
	"testing"

	"github.com/KimNorgaard/go-clausewitz"
	"github.com/stretchr/testify/require"
)

// TestMarshal_OmitEmpty tests the functionality of the ",omitempty" struct tag.
func TestMarshal_OmitEmpty(t *testing.T) {
	type OmitStruct struct {
		String     string              `clausewitz:"string,omitempty"`
		Int        int                 `clausewitz:"int,omitempty"`
		Float      float64             `clausewitz:"float,omitempty"`
		Bool       bool                `clausewitz:"bool,omitempty"`
		Slice      []string            `clausewitz:"slice,omitempty"`
		Map        map[string]int      `clausewitz:"map,omitempty"`
		Pointer    *int                `clausewitz:"pointer,omitempty"`
		Struct     *OmitStruct         `clausewitz:"struct,omitempty"`
		Doc        clausewitz.Document `clausewitz:"doc,omitempty"`
		unexported string
	}

	t.Run("All fields are zero-valued and should be omitted", func(t *testing.T) {
		v := OmitStruct{unexported: "should be ignored"}
		b, err := clausewitz.Marshal(v)
		require.NoError(t, err)
		require.Equal(t, "", string(b))
	})

	t.Run("Empty but non-nil values are omitted too", func(t *testing.T) {
		v := OmitStruct{Slice: []string{}, Map: map[string]int{}}
		b, err := clausewitz.Marshal(v)
		require.NoError(t, err)
		require.Equal(t, "", string(b))
	})

	t.Run("All fields have non-zero values and should be included", func(t *testing.T) {
		pointerVal := 123
		v := OmitStruct{
			String:  "hello",
			Int:     1,
			Float:   3.14,
			Bool:    true,
			Slice:   []string{"a"},
			Map:     map[string]int{"b": 2},
			Pointer: &pointerVal,
			Struct:  &OmitStruct{String: "nested"},
			Doc:     *clausewitz.ParseString("x=y"),
		}
		b, err := clausewitz.Marshal(v, clausewitz.Indent(0))
		require.NoError(t, err)
		expected := "string=hello\nint=1\nfloat=3.14\nbool=yes\nslice={\na\n}\nmap={\nb=2\n}\npointer=123\nstruct={\nstring=nested\n}\ndoc={\nx=y\n}\n"
		require.Equal(t, expected, string(b))
	})

	t.Run("Fields without omitempty keep their zero values", func(t *testing.T) {
		type Mixed struct {
			Kept    int    `clausewitz:"kept"`
			Dropped int    `clausewitz:"dropped,omitempty"`
			Name    string `clausewitz:",omitempty"`
		}
		b, err := clausewitz.Marshal(Mixed{})
		require.NoError(t, err)
		require.Equal(t, "kept=0\n", string(b))

		b, err = clausewitz.Marshal(Mixed{Name: "x"})
		require.NoError(t, err)
		require.Equal(t, "kept=0\nName=x\n", string(b))
	})
}
