package systems

import "github.com/go-gl/mathgl/mgl32"

// WorldUp is the fixed up vector used for facing.
var WorldUp = mgl32.Vec3{0, 1, 0}

// LookRotation returns the rotation that maps +Z onto forward while keeping the
// local up as close to up as possible. It fails for a zero forward or a forward
// parallel to up, where the facing is undefined.
func LookRotation(forward, up mgl32.Vec3) (mgl32.Quat, bool) {
	f, ok := direction(forward)
	if !ok {
		return mgl32.QuatIdent(), false
	}
	right, ok := direction(up.Cross(f))
	if !ok {
		return mgl32.QuatIdent(), false
	}
	localUp := f.Cross(right)
	m := mgl32.Mat3FromCols(right, localUp, f)
	return mgl32.Mat4ToQuat(m.Mat4()).Normalize(), true
}

// Orient derives each agent's rotation from its velocity. When the facing is
// undefined the previous rotation is kept.
func Orient(batch []Agent) {
	for i := range batch {
		a := &batch[i]
		if q, ok := LookRotation(a.Vel, WorldUp); ok {
			a.Rot = q
		}
	}
}
