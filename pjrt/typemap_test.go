package pjrt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

func TestBufferTypeMapping(t *testing.T) {
	type caseT struct {
		name     string
		want     pjrtabi.BufferType
		wantSize int
	}

	f32Type, f32Size := bufferType[float32]()
	f64Type, f64Size := bufferType[float64]()
	s8Type, s8Size := bufferType[int8]()
	u8Type, u8Size := bufferType[uint8]()
	s32Type, s32Size := bufferType[int32]()
	u64Type, u64Size := bufferType[uint64]()

	cases := []struct {
		got      pjrtabi.BufferType
		gotSize  int
		expected caseT
	}{
		{f32Type, f32Size, caseT{"f32", pjrtabi.BufferTypeF32, 4}},
		{f64Type, f64Size, caseT{"f64", pjrtabi.BufferTypeF64, 8}},
		{s8Type, s8Size, caseT{"s8", pjrtabi.BufferTypeS8, 1}},
		{u8Type, u8Size, caseT{"u8", pjrtabi.BufferTypeU8, 1}},
		{s32Type, s32Size, caseT{"s32", pjrtabi.BufferTypeS32, 4}},
		{u64Type, u64Size, caseT{"u64", pjrtabi.BufferTypeU64, 8}},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected.want, c.got, c.expected.name)
		assert.Equal(t, c.expected.wantSize, c.gotSize, c.expected.name)
	}
}
