// Package fileops provides file operation tools.
package fileops

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/pack"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
)

// New creates the fileops pack. Root, when non-empty, confines every
// path to that directory.
func New(root string) *pack.Pack {
	return pack.NewBuilder("fileops").
		WithDescription("File system operations").
		WithVersion("1.0.0").
		AddTools(
			readFileTool(root),
			writeFileTool(root),
			listDirTool(root),
			fileExistsTool(root),
		).
		Build()
}

// resolve joins path against root and rejects escapes.
func resolve(root, path string) (string, error) {
	if root == "" {
		return path, nil
	}
	joined := filepath.Join(root, path)
	rel, err := filepath.Rel(root, joined)
	if err != nil || rel == ".." || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
		return "", tool.Permanent(os.ErrPermission)
	}
	return joined, nil
}

func pathSchema() tool.Schema {
	return tool.ObjectSchema(map[string]json.RawMessage{
		"path": json.RawMessage(`{"type": "string", "minLength": 1}`),
	}, []string{"path"})
}

type readFileInput struct {
	Path string `json:"path"`
}

type readFileOutput struct {
	Content string `json:"content"`
	Size    int64  `json:"size"`
}

func readFileTool(root string) tool.Tool {
	return tool.NewBuilder("fs.read").
		WithDescription("Read contents of a file").
		WithInputSchema(pathSchema()).
		ReadOnly().
		Cacheable().
		WithHandler(func(_ context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in readFileInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}

			path, err := resolve(root, in.Path)
			if err != nil {
				return nil, err
			}

			content, err := os.ReadFile(path) // #nosec G304 -- path confined by resolve
			if err != nil {
				if os.IsNotExist(err) || os.IsPermission(err) {
					return nil, tool.Permanent(err)
				}
				return nil, err
			}

			return json.Marshal(readFileOutput{
				Content: string(content),
				Size:    int64(len(content)),
			})
		}).
		MustBuild()
}

type writeFileInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type writeFileOutput struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

func writeFileTool(root string) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"path":    json.RawMessage(`{"type": "string", "minLength": 1}`),
		"content": json.RawMessage(`{"type": "string"}`),
	}, []string{"path", "content"})

	return tool.NewBuilder("fs.write").
		WithDescription("Write content to a file").
		WithInputSchema(schema).
		WithHandler(func(_ context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in writeFileInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}

			path, err := resolve(root, in.Path)
			if err != nil {
				return nil, err
			}

			if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil { // #nosec G301
				return nil, err
			}
			if err := os.WriteFile(path, []byte(in.Content), 0600); err != nil { // #nosec G306
				return nil, err
			}

			return json.Marshal(writeFileOutput{
				Path:  in.Path,
				Bytes: len(in.Content),
			})
		}).
		MustBuild()
}

type listDirInput struct {
	Path string `json:"path"`
}

type listDirEntry struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size"`
}

type listDirOutput struct {
	Entries []listDirEntry `json:"entries"`
	Count   int            `json:"count"`
}

func listDirTool(root string) tool.Tool {
	return tool.NewBuilder("fs.list").
		WithDescription("List directory contents").
		WithInputSchema(pathSchema()).
		ReadOnly().
		WithHandler(func(_ context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in listDirInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}

			path, err := resolve(root, in.Path)
			if err != nil {
				return nil, err
			}

			entries, err := os.ReadDir(path)
			if err != nil {
				if os.IsNotExist(err) {
					return nil, tool.Permanent(err)
				}
				return nil, err
			}

			out := listDirOutput{Entries: make([]listDirEntry, 0, len(entries))}
			for _, e := range entries {
				var size int64
				if info, err := e.Info(); err == nil {
					size = info.Size()
				}
				out.Entries = append(out.Entries, listDirEntry{
					Name:  e.Name(),
					IsDir: e.IsDir(),
					Size:  size,
				})
			}
			out.Count = len(out.Entries)

			return json.Marshal(out)
		}).
		MustBuild()
}

type fileExistsInput struct {
	Path string `json:"path"`
}

type fileExistsOutput struct {
	Exists bool  `json:"exists"`
	IsDir  bool  `json:"is_dir"`
	Size   int64 `json:"size,omitempty"`
}

func fileExistsTool(root string) tool.Tool {
	return tool.NewBuilder("fs.exists").
		WithDescription("Check if a file or directory exists").
		WithInputSchema(pathSchema()).
		ReadOnly().
		WithHandler(func(_ context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in fileExistsInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}

			path, err := resolve(root, in.Path)
			if err != nil {
				return nil, err
			}

			info, err := os.Stat(path)
			out := fileExistsOutput{Exists: err == nil}
			if out.Exists {
				out.IsDir = info.IsDir()
				out.Size = info.Size()
			}

			return json.Marshal(out)
		}).
		MustBuild()
}
