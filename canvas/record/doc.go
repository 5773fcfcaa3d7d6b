// Package record provides a canvas that records drawing operations.
//
// A Recorder implements canvas.Canvas. Every fill, stroke, clip, text and
// image call becomes a Command carrying the style in effect. Paths are
// stored already mapped to pixels, so a figure can be checked for "the
// arrow ends at pixel (120, 80)" without rasterizing anything.
//
// # Commands
//
// Commands fall into three groups:
//   - State commands (save, restore, resize)
//   - Path commands (fill, stroke, clip) with a pixel-space path
//   - Local commands (fillRect, clearRect, text, image) with local
//     coordinates and the transform in effect
//
// The JSON form of a Frame is what the preview server streams to its
// browser client, which executes it on a Canvas2D context.
//
// # Replay
//
// Playback replays a command list onto any other canvas, for example a
// raster canvas to produce a PNG of a recorded frame.
package record
