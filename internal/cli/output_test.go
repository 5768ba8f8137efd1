package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumasuke/textractor/internal/textract"
)

func sampleResult() *textract.Result {
	return &textract.Result{
		DocumentMetadata: &types.DocumentMetadata{Pages: aws.Int32(1)},
		Blocks: []types.Block{
			{Id: aws.String("page-1"), BlockType: types.BlockTypePage},
			{
				Id:        aws.String("line-1"),
				BlockType: types.BlockTypeLine,
				Text:      aws.String("Hello world"),
			},
		},
	}
}

func TestWriteResultJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeResult(sampleResult(), path, "json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded textract.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Blocks, 2)
	assert.Equal(t, "Hello world", aws.ToString(decoded.Blocks[1].Text))
}

func TestWriteResultText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeResult(sampleResult(), path, "text"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello world\n", string(data))
}

func TestWriteResultUnknownFormat(t *testing.T) {
	err := writeResult(sampleResult(), filepath.Join(t.TempDir(), "out"), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
