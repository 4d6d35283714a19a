package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"guide/steam.md":             {Data: []byte("# Steam\n\nProton prefixes live in compatdata.")},
		"guide/dry-run.txt":          {Data: []byte("DRY RUN MODE")},
		"guide/advanced/registry.md": {Data: []byte("# Registry")},
		"guide/notes.json":           {Data: []byte("{}")},
		"other/outside.md":           {Data: []byte("# Outside")},
	}
}

func TestTopicManager_Load(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testFS(), "guide")
		require.NoError(t, tm.Load())

		assert.Equal(t, []string{"dry-run", "registry", "steam"}, tm.ListTopics())

		topic, ok := tm.GetTopic("steam")
		require.True(t, ok)
		assert.Equal(t, "guide/steam.md", topic.FilePath)
		assert.Contains(t, topic.Content, "compatdata")

		_, ok = tm.GetTopic("notes")
		assert.False(t, ok)
		_, ok = tm.GetTopic("outside")
		assert.False(t, ok)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), "guide", Options{Extensions: []string{".json"}})
		require.NoError(t, tm.Load())

		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})

	t.Run("missing directory", func(t *testing.T) {
		tm := New(testFS(), "nope")
		require.NoError(t, tm.Load())

		assert.Empty(t, tm.ListTopics())
	})
}

type upperRenderer struct{ formats []string }

func (r *upperRenderer) Render(content, format string) string {
	r.formats = append(r.formats, format)
	return "RENDERED " + content
}

func TestTopicManager_RenderUsesExtension(t *testing.T) {
	r := &upperRenderer{}
	tm := NewWithOptions(testFS(), "guide", Options{Renderer: r})
	require.NoError(t, tm.Load())

	topic, _ := tm.GetTopic("dry-run")
	assert.Equal(t, "RENDERED DRY RUN MODE", tm.Render(topic))
	assert.Equal(t, []string{".txt"}, r.formats)
}

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "testapp", Short: "Test application"}
	root.AddCommand(&cobra.Command{
		Use:   "locate",
		Short: "Show where things are",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	return root
}

func execute(t *testing.T, root *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestInitialize_HelpCommand(t *testing.T) {
	root := newRoot()
	tm, err := Initialize(root, testFS(), "guide")
	require.NoError(t, err)
	require.NotNil(t, tm)

	t.Run("topic", func(t *testing.T) {
		assert.Equal(t, "DRY RUN MODE", execute(t, root, "help", "dry-run"))
	})

	t.Run("topic list", func(t *testing.T) {
		out := execute(t, root, "help", "topics")
		assert.Contains(t, out, "Available help topics:")
		assert.Contains(t, out, "  steam\n")
		assert.Contains(t, out, "'testapp help <topic>'")
	})

	t.Run("command falls through to cobra help", func(t *testing.T) {
		out := execute(t, root, "help", "locate")
		assert.Contains(t, out, "Show where things are")
	})
}

func TestPrintList_Empty(t *testing.T) {
	var out bytes.Buffer
	New(fstest.MapFS{}, "guide").PrintList(&out, "testapp")

	assert.Equal(t, "No help topics available.\n", out.String())
}
