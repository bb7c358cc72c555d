package components

// SceneObjectComponent 旧场景中预先摆放、没有实例ID的对象
// 启动时按名称反查建筑定义，成功后由 PlacementRegistry 接管
type SceneObjectComponent struct {
	// Name 场景中的对象名称（如 "House (Clone)"）
	Name string
}
