package domain

// DiffIDs 计算关系集合的最小变更：attach = next − current，detach = current − next。
// 仓储据此做增量 insert/delete，避免整表重建丢失审计时间戳
func DiffIDs(current, next []string) (attach []string, detach []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	nextSet := make(map[string]struct{}, len(next))
	for _, id := range next {
		nextSet[id] = struct{}{}
	}
	for _, id := range next {
		if _, ok := currentSet[id]; !ok {
			attach = append(attach, id)
		}
	}
	for _, id := range current {
		if _, ok := nextSet[id]; !ok {
			detach = append(detach, id)
		}
	}
	return attach, detach
}

func cloneIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}
