// Package automation defines scenes and automations.
//
// A Scene is an ordered list of device actions that the home coordinator
// applies in one step. Its Active flag is perishable: any later change to a
// device the scene targets clears it.
//
// An Automation is a stored schedule ("HH:mm" plus weekday names) with a
// list of actions. Automations are never executed. The schedule is parsed
// with robfig/cron so it can be validated and its next fire time shown.
//
//	a := &automation.Automation{Time: "07:30", Days: []string{"Mon", "fri"}, Active: true}
//	next, ok := automation.NextRun(a, time.Now())
package automation
