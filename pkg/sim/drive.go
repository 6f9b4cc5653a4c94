package sim

import "math"

// wheelState integrates the speed of one wheel, accelerating at a
// bounded rate towards the target speed.
type wheelState struct {
	speed  float64
	target float64
}

// step advances dt seconds and returns the distance traveled.
// With accel 0 the target speed is reached immediately.
func (w *wheelState) step(dt, accel float64) float64 {
	diff := w.target - w.speed
	if accel <= 0 || diff == 0 {
		w.speed = w.target
		return w.speed * dt
	}
	a := math.Copysign(accel, diff)
	accelTime := math.Abs(diff) / accel
	if accelTime >= dt {
		dist := w.speed*dt + a*dt*dt/2
		w.speed += a * dt
		return dist
	}
	// acceleration completes within dt, cruise for the rest.
	dist := w.speed*accelTime + a*accelTime*accelTime/2 + w.target*(dt-accelTime)
	w.speed = w.target
	return dist
}

// advance moves a differential drive pose by the distances of the
// left and right wheels, track is the distance between the wheels.
func advance(pose Pose2D, left, right, track float64) Pose2D {
	dist := (left + right) / 2
	turn := (right - left) / track
	heading := pose.Orientation.AddRadians(turn / 2)
	pose.Pos2D = pose.Pos2D.Add(heading.Project(dist))
	pose.Orientation = pose.Orientation.AddRadians(turn)
	return pose
}
