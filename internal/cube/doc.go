// Package cube classifies the nine facelet colors of one Rubik's Cube face.
//
// A Detector loads a photograph, boosts contrast and brightness, splits the
// image into a blind 3x3 grid and labels the most frequent exact color of each
// cell as orange, red, yellow, white, blue or green. A Runner applies the
// detector to a list of images and keeps going when individual images fail.
//
// # Classification
//
// Classifier first applies two hue overrides for orange and yellow, which sit
// close together on the hue circle, then falls back to the nearest palette
// entry by RGB distance plus a weighted hue difference. Every input maps to
// exactly one label.
//
// # Output
//
// Results marshals to a JSON object keyed "Image 1", "Image 2", ... in input
// order. Each value is either a 3x3 array of color names or {"error": msg}.
package cube
