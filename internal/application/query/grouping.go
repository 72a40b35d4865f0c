package query

// groupByParent 把一对多联表查询的扁平行按父ID归并
//   - key:   取父ID
//   - head:  父ID第一次出现时,用该行构造父对象
//   - child: 把该行的子数据追加到父对象;子ID为NULL时应直接忽略
//
// 返回结果保持父ID第一次出现的顺序
func groupByParent[R any, P any](rows []R, key func(R) uint, head func(R) P, child func(*P, R)) []P {
	index := make(map[uint]int, len(rows))
	parents := make([]P, 0)

	for _, row := range rows {
		id := key(row)
		i, ok := index[id]
		if !ok {
			parents = append(parents, head(row))
			i = len(parents) - 1
			index[id] = i
		}
		child(&parents[i], row)
	}
	return parents
}
