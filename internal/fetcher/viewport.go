package fetcher

import (
	"math"

	"vvstream/internal/model"
)

// viewNormals are the outward unit normals of the six faces of a multiview
// encoding, in the fixed order +X, -X, +Y, -Y, +Z, -Z.
var viewNormals = [model.Views][3]float64{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// cameraForward derives the unit forward vector from a camera pose's yaw
// and pitch (degrees), the same spherical-to-cartesian convention a
// trajectory predictor would use to project future poses.
func cameraForward(pose model.CameraPosition) [3]float64 {
	yaw := pose.Yaw * math.Pi / 180
	pitch := pose.Pitch * math.Pi / 180
	return [3]float64{
		math.Cos(pitch) * math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch) * math.Cos(yaw),
	}
}

// viewCosines returns the cosine between the camera's forward vector and
// each of the first `views` view normals. A nil pose (no camera-pose
// information available yet) is treated as looking squarely at every view:
// every cosine is 1, which lies above the MCKP visibility threshold, so the
// MCKP-based selectors give every view its lowest level until a pose arrives.
func viewCosines(pose *model.CameraPosition, views int) []float64 {
	cosines := make([]float64, views)
	if pose == nil {
		for i := range cosines {
			cosines[i] = 1
		}
		return cosines
	}

	f := cameraForward(*pose)
	for i := 0; i < views; i++ {
		n := viewNormals[i]
		cosines[i] = f[0]*n[0] + f[1]*n[1] + f[2]*n[2]
	}
	return cosines
}
