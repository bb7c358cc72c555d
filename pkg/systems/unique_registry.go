package systems

import "sort"

// UniqueRegistry 已建成的唯一建筑
// 每个定义ID最多对应一个实例
type UniqueRegistry struct {
	built map[string]string // 定义ID -> 实例ID
}

// NewUniqueRegistry 创建空的唯一建筑登记表
func NewUniqueRegistry() *UniqueRegistry {
	return &UniqueRegistry{built: make(map[string]string)}
}

// Contains 检查定义是否已经建成
func (r *UniqueRegistry) Contains(identifier string) bool {
	_, ok := r.built[identifier]
	return ok
}

// Add 登记唯一建筑，已存在时返回 false
func (r *UniqueRegistry) Add(identifier, guid string) bool {
	if r.Contains(identifier) {
		return false
	}
	r.built[identifier] = guid
	return true
}

// Remove 注销唯一建筑
// 只有实例ID匹配时才会注销
func (r *UniqueRegistry) Remove(identifier, guid string) {
	if r.built[identifier] == guid {
		delete(r.built, identifier)
	}
}

// Count 返回定义的登记数量（0 或 1）
func (r *UniqueRegistry) Count(identifier string) int {
	if r.Contains(identifier) {
		return 1
	}
	return 0
}

// Identifiers 返回已建成的唯一建筑定义ID（排序）
func (r *UniqueRegistry) Identifiers() []string {
	ids := make([]string, 0, len(r.built))
	for id := range r.built {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len 返回登记数量
func (r *UniqueRegistry) Len() int {
	return len(r.built)
}
