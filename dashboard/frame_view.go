package dashboard

import "corebot/telemetry"

// frameView is the JSON-friendly projection of a telemetry.Frame sent to the browser.
type frameView struct {
	Kind    string            `json:"kind"`
	Name    string            `json:"name,omitempty"`
	X       float64           `json:"x,omitempty"`
	Y       float64           `json:"y,omitempty"`
	Z       float64           `json:"z,omitempty"`
	Fields  map[string]float64 `json:"fields,omitempty"`
	Level   string            `json:"level,omitempty"`
	Message string            `json:"message,omitempty"`
}

func frameToJSON(f telemetry.Frame) frameView {
	switch v := f.(type) {
	case telemetry.PositionFrame:
		return frameView{Kind: "position", Name: v.Name, X: v.X, Y: v.Y}
	case telemetry.VectorFrame:
		return frameView{Kind: "vector", Name: v.Name, X: v.X, Y: v.Y, Z: v.Z}
	case telemetry.TransformFrame:
		t := v.Transform
		pos := t.GetTranslation()
		return frameView{Kind: "transform", Name: v.Name, X: pos.X, Y: pos.Y}
	case telemetry.UpdatableObjectFrame:
		return frameView{Kind: "object", Name: v.Name, Fields: v.Fields}
	case telemetry.LogFrame:
		return frameView{Kind: "log", Level: v.Level, Message: v.Message}
	default:
		return frameView{Kind: "unknown"}
	}
}
