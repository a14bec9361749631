package sources

import (
	"encoding/json"
	"fmt"
	"os"

	"subscore/internal/transcript"
)

type scriptLinePayload struct {
	LineID      string `json:"lineId"`
	Speaker     string `json:"speaker"`
	Text        string `json:"text"`
	IsDirection bool   `json:"isDirection"`
}

type scriptScenePayload struct {
	SceneID string              `json:"sceneId"`
	Lines   []scriptLinePayload `json:"lines"`
}

type scriptPayload struct {
	Episode int                  `json:"episode"`
	Scenes  []scriptScenePayload `json:"scenes"`
}

// LoadScript reads a scene-ordered script JSON file and flattens its scenes
// into one line list in file order. Direction lines are kept; callers filter
// with transcript.DialogueOnly before comparison.
func LoadScript(path string) ([]transcript.ScriptLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var payload scriptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse script json: %w", err)
	}

	var lines []transcript.ScriptLine
	for _, scene := range payload.Scenes {
		for _, line := range scene.Lines {
			lineID := line.LineID
			if lineID == "" {
				lineID = fmt.Sprintf("%s-l%03d", scene.SceneID, len(lines)+1)
			}
			lines = append(lines, transcript.ScriptLine{
				LineID:      lineID,
				Speaker:     line.Speaker,
				Text:        line.Text,
				IsDirection: line.IsDirection,
			})
		}
	}
	return lines, nil
}
