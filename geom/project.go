package geom

// ProjectPos projects a world-space point through the given
// view-projection matrix into screen space: XY in pixel coordinates
// sized to (width, height), and Z in normalized device coordinates
// [-1, 1] mapped to [0, 1] depth. No Y flip is applied: NDC y=-1 maps
// to screen y=0, matching the source's project_pos. Points behind the
// camera (w <= 0) are not special-cased here; callers are expected to
// have already culled or clipped such points.
func ProjectPos(viewProj Mat4, p Vec3, width, height float32) Vec3 {
	clip := viewProj.MulVec4(V4FromV3(p, 1))
	ndc := clip.PerspectiveDivide()
	return Vec3{
		(ndc.X + 1) * 0.5 * width,
		(ndc.Y + 1) * 0.5 * height,
		(ndc.Z + 1) * 0.5,
	}
}
