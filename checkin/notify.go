package checkin

import "fmt"

// FormatNotification renders the Slack message for one team's outcome.
// createdURL is the page URL the document service returned after creation and
// is only read when a request was produced.
func FormatNotification(outcome Outcome, team TeamConfig, createdURL string) string {
	switch {
	case outcome.Request != nil:
		return fmt.Sprintf("이번 주 %s 체크인 문서입니다. template을 클릭해 작성해주세요!\n%s", team.TeamName, createdURL)
	case outcome.NoAction != nil && outcome.NoAction.Reason == ReasonRecent:
		return fmt.Sprintf("이번 주 %s 체크인 문서는 별도로 생성되지 않았습니다.\n%s", team.TeamName, outcome.NoAction.ReferenceURL)
	default:
		return fmt.Sprintf("%s와 같은 제목을 가진 체크인 문서가 존재하지 않습니다. 첫 체크인 문서는 수동으로 만들어주세요.", team.BaseTitle)
	}
}
