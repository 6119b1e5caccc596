package test

type TestStatus string

const (
	IN_PROGRESS TestStatus = "IN_PROGRESS"
	COMPLETED   TestStatus = "COMPLETED"
)

var AllStatuses = []TestStatus{
	IN_PROGRESS,
	COMPLETED,
}

func (s TestStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}
