package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dep2p/go-getipfs/pkg/types"
)

// TestNormalize_Absent 测试未指定时使用默认集合
func TestNormalize_Absent(t *testing.T) {
	got := Normalize(nil)
	assert.Equal(t, []string{"id", "version", "add", "cat", "dag", "swarm"}, got)

	// 返回值可修改，不影响下一次调用
	got[0] = "mutated"
	assert.Equal(t, types.CapID, Normalize(nil)[0])
}

// TestNormalize_Custom 测试自定义列表补齐必需能力
func TestNormalize_Custom(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		want      []string
	}{
		{"empty", []string{}, []string{"id", "version"}},
		{"missing both", []string{"add", "cat"}, []string{"add", "cat", "id", "version"}},
		{"missing version", []string{"dag", "id"}, []string{"dag", "id", "version"}},
		{"missing id", []string{"version", "swarm"}, []string{"version", "swarm", "id"}},
		{"complete", []string{"version", "id"}, []string{"version", "id"}},
		{"duplicates kept", []string{"add", "add"}, []string{"add", "add", "id", "version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.requested))
		})
	}
}

// TestNormalize_AlwaysContainsRequired 任意输入的输出都包含 id 与 version
func TestNormalize_AlwaysContainsRequired(t *testing.T) {
	inputs := [][]string{
		nil,
		{},
		{"id"},
		{"version"},
		{"pubsub", "name", "key"},
		{"", "x"},
	}
	for _, in := range inputs {
		out := Normalize(in)
		assert.Empty(t, Missing(out), "input %v", in)
	}
}

// TestNormalize_DoesNotMutateInput 测试不修改输入
func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := make([]string, 1, 8)
	in[0] = "add"

	out := Normalize(in)
	assert.Equal(t, []string{"add"}, in)
	assert.Equal(t, []string{"add", "id", "version"}, out)

	out[0] = "changed"
	assert.Equal(t, "add", in[0])
}

// TestMissing 测试缺失能力检查
func TestMissing(t *testing.T) {
	assert.Equal(t, []string{"id", "version"}, Missing(nil))
	assert.Equal(t, []string{"version"}, Missing([]string{"id"}))
	assert.Empty(t, Missing([]string{"version", "id", "add"}))
}
