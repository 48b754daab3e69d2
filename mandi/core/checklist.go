package core

// Role identifies the kind of field worker reporting at a market.
type Role string

const (
	RoleEmployee      Role = "employee"
	RoleBDO           Role = "bdo"
	RoleMarketManager Role = "market_manager"
)

// TaskKind identifies one checklist item or evidence source.
type TaskKind string

const (
	TaskPunchIn                 TaskKind = "punch_in"
	TaskStallConfirmation       TaskKind = "stall_confirmation"
	TaskOutsideRatesMedia       TaskKind = "outside_rates_media"
	TaskRateBoardMedia          TaskKind = "rate_board_media"
	TaskMarketVideo             TaskKind = "market_video"
	TaskCleaningVideo           TaskKind = "cleaning_video"
	TaskCustomerFeedbackMedia   TaskKind = "customer_feedback_media"
	TaskTodaysOffers            TaskKind = "todays_offers"
	TaskNonAvailableCommodities TaskKind = "non_available_commodities"
	TaskStallInspection         TaskKind = "stall_inspection"
	TaskCashCollection          TaskKind = "cash_collection"
	TaskFeedbackOrPlanning      TaskKind = "feedback_or_planning"
	TaskPunchOut                TaskKind = "punch_out"

	// Evidence-only kinds. They never appear in a checklist; both feed the
	// single feedback-or-planning slot, which is satisfied by either one.
	TaskOrganiserFeedback TaskKind = "organiser_feedback"
	TaskNextDayPlanning   TaskKind = "next_day_planning"
)

// checklists are insertion-ordered per role and must never change within a
// deployment: scoring and display both rely on the order being stable.
var checklists = map[Role][]TaskKind{
	RoleEmployee: {
		TaskPunchIn,
		TaskStallConfirmation,
		TaskOutsideRatesMedia,
		TaskRateBoardMedia,
		TaskMarketVideo,
		TaskCleaningVideo,
		TaskCustomerFeedbackMedia,
		TaskTodaysOffers,
		TaskNonAvailableCommodities,
		TaskStallInspection,
		TaskCashCollection,
		TaskFeedbackOrPlanning,
		TaskPunchOut,
	},
	RoleBDO: {
		TaskPunchIn,
		TaskMarketVideo,
		TaskStallInspection,
		TaskFeedbackOrPlanning,
		TaskPunchOut,
	},
	RoleMarketManager: {
		TaskPunchIn,
		TaskStallConfirmation,
		TaskTodaysOffers,
		TaskNonAvailableCommodities,
		TaskCashCollection,
		TaskFeedbackOrPlanning,
		TaskPunchOut,
	},
}

// planningDayChecklist applies to every role on the weekly closed day:
// no market runs, only the next-day plan is owed.
var planningDayChecklist = []TaskKind{TaskFeedbackOrPlanning}

// ChecklistFor returns the ordered checklist for a role and whether the role
// was recognised. Unknown roles fall back to the employee checklist rather
// than dropping the worker from monitoring.
func ChecklistFor(role Role) ([]TaskKind, bool) {
	list, ok := checklists[role]
	if !ok {
		list = checklists[RoleEmployee]
	}
	out := make([]TaskKind, len(list))
	copy(out, list)
	return out, ok
}

var taskLabels = map[TaskKind]string{
	TaskPunchIn:                 "Punch in",
	TaskStallConfirmation:       "Stall confirmation",
	TaskOutsideRatesMedia:       "Outside rates photo",
	TaskRateBoardMedia:          "Rate board photo",
	TaskMarketVideo:             "Market video",
	TaskCleaningVideo:           "Cleaning video",
	TaskCustomerFeedbackMedia:   "Customer feedback photo",
	TaskTodaysOffers:            "Today's offers",
	TaskNonAvailableCommodities: "Non-available commodities",
	TaskStallInspection:         "Stall inspection",
	TaskCashCollection:          "Cash collection",
	TaskFeedbackOrPlanning:      "Organiser feedback / next-day plan",
	TaskPunchOut:                "Punch out",
	TaskOrganiserFeedback:       "Organiser feedback",
	TaskNextDayPlanning:         "Next-day plan",
}

func Label(kind TaskKind) string {
	if l, ok := taskLabels[kind]; ok {
		return l
	}
	return string(kind)
}
