package core

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Map_Transforms_All_Elements_In_Order(t *testing.T) {
	// Arrange
	source := []int{1, 2, 3}

	// Act
	result := Map(source, strconv.Itoa)

	// Assert
	require.Equal(t, []string{"1", "2", "3"}, result)
}

func Test_Map_Returns_Empty_Slice_For_Empty_Input(t *testing.T) {
	// Act
	result := Map([]int{}, strconv.Itoa)

	// Assert
	require.Empty(t, result)
}
