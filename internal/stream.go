package internal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// streamEvent is one SSE data payload from a streaming job.
type streamEvent struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
	Stage     string `json:"stage"`
	Choices   []struct {
		Delta struct {
			Content json.RawMessage `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// parseStream reads a streamed job response line by line, accumulating
// string deltas into the MESSAGE text and collecting structured deltas as
// typed blocks. It returns once the server sends END_MARK or [DONE], or
// the stream ends.
func parseStream(r io.Reader) (*JobResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var text strings.Builder
	var blocks []Block
	jobID := ""

scan:
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "", strings.HasPrefix(line, ":keep-alive"):
			continue
		case strings.HasPrefix(line, "event:"):
			if strings.TrimSpace(strings.TrimPrefix(line, "event:")) == "END_MARK" {
				break scan
			}
			continue
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "" {
				continue
			}
			if data == "[DONE]" {
				break scan
			}

			var evt streamEvent
			if err := json.Unmarshal([]byte(data), &evt); err != nil {
				continue
			}
			if jobID == "" && evt.ID != "" {
				jobID = evt.ID
			}
			if len(evt.Choices) == 0 {
				continue
			}

			content := evt.Choices[0].Delta.Content
			if len(content) == 0 {
				continue
			}

			var fragment string
			if err := json.Unmarshal(content, &fragment); err == nil {
				text.WriteString(fragment)
				continue
			}

			blocks = append(blocks, Block{
				Type:      classifyContent(evt.GroupName, content),
				GroupID:   evt.GroupID,
				GroupName: evt.GroupName,
				Stage:     evt.Stage,
				Content:   content,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}

	result := &JobResult{JobID: jobID, Text: text.String()}
	if result.Text != "" {
		// Surface the accumulated text as a MESSAGE block as well, so
		// streamed and non-streamed runs expose the same block kinds.
		quoted, _ := json.Marshal(result.Text)
		result.Blocks = append(result.Blocks, Block{Type: BlockMessage, Content: quoted})
	}
	result.Blocks = append(result.Blocks, blocks...)
	return result, nil
}

// classifyContent types a structured delta. The server labels chart groups
// by name; for file artifacts the extension decides table versus image.
func classifyContent(groupName string, content json.RawMessage) BlockType {
	if strings.Contains(strings.ToLower(groupName), "chart") {
		return BlockChartInfo
	}

	var ref FileRef
	if err := json.Unmarshal(content, &ref); err == nil && ref.URL != "" && ref.Name != "" {
		if strings.HasSuffix(strings.ToLower(ref.Name), ".csv") {
			return BlockTable
		}
		return BlockImage
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(content, &probe); err == nil {
		if _, ok := probe["sources"]; ok {
			return BlockSources
		}
		if _, ok := probe["questions"]; ok {
			return BlockQuestions
		}
		if _, ok := probe["code"]; ok {
			return BlockCode
		}
	}
	return BlockMessage
}
