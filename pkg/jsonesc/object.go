package jsonesc

// Member 是 [Object] 中的一个键值对。
type Member struct {
	Key   string
	Value any
}

// Object 是保持插入顺序的映射，序列化时按切片顺序输出。
//
// 重复的键会原样输出，调用方负责去重。
type Object []Member

// Get 返回首个匹配 key 的值。
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}

	return nil, false
}

// Set 覆盖已有 key 的值，不存在时追加到末尾。
func (o Object) Set(key string, value any) Object {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value
			return o
		}
	}

	return append(o, Member{Key: key, Value: value})
}

// Keys 按插入顺序返回全部 key。
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}

	return keys
}
