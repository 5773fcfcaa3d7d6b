package record

import (
	"github.com/gogpu/pdraw/canvas"
)

// Playback replays commands onto c, which is expected to start with an
// identity transform. Path commands are replayed in pixel space.
func Playback(cmds []Command, c canvas.Canvas) {
	for _, cmd := range cmds {
		switch cmd.Op {
		case OpSave:
			c.Save()
		case OpRestore:
			c.Restore()
		case OpResize:
			c.Resize(int(cmd.W), int(cmd.H))
		case OpFill:
			replayPath(c, cmd.Path)
			c.SetFillStyle(cmd.Fill)
			c.Fill()
		case OpStroke:
			replayPath(c, cmd.Path)
			c.SetStrokeStyle(cmd.Stroke)
			c.SetLineWidth(cmd.LineWidth)
			c.SetLineDash(cmd.Dash)
			c.Stroke()
		case OpClip:
			replayPath(c, cmd.Path)
			c.Clip()
		case OpFillRect:
			c.Save()
			c.Transform(cmd.matrix)
			c.SetFillStyle(cmd.Fill)
			c.FillRect(cmd.X, cmd.Y, cmd.W, cmd.H)
			c.Restore()
		case OpClearRect:
			c.Save()
			c.Transform(cmd.matrix)
			c.ClearRect(cmd.X, cmd.Y, cmd.W, cmd.H)
			c.Restore()
		case OpText:
			c.Save()
			c.Transform(cmd.matrix)
			c.SetFillStyle(cmd.Fill)
			c.SetFont(cmd.Font)
			c.SetTextAlign(canvas.TextAlign(cmd.Align))
			c.SetTextBaseline(canvas.TextBaseline(cmd.Baseline))
			c.FillText(cmd.Text, cmd.X, cmd.Y)
			c.Restore()
		case OpImage:
			if cmd.image.Data == nil {
				continue
			}
			c.Save()
			c.Transform(cmd.matrix)
			c.DrawImage(cmd.image, cmd.X, cmd.Y, cmd.W, cmd.H)
			c.Restore()
		}
	}
}

// Playback replays everything recorded so far onto c.
func (r *Recorder) Playback(c canvas.Canvas) {
	Playback(r.commands, c)
}

func replayPath(c canvas.Canvas, path []Segment) {
	c.BeginPath()
	for _, s := range path {
		switch s.Verb {
		case VerbMove:
			c.MoveTo(s.Pts[0].X, s.Pts[0].Y)
		case VerbLine:
			c.LineTo(s.Pts[0].X, s.Pts[0].Y)
		case VerbCubic:
			c.BezierCurveTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y, s.Pts[2].X, s.Pts[2].Y)
		case VerbArc:
			c.Arc(s.Pts[0].X, s.Pts[0].Y, s.Radius, s.Start, s.End, s.Anticlockwise)
		case VerbClose:
			c.ClosePath()
		}
	}
}
