package quiz

// Answer is one option of a question.
type Answer struct {
	Text  string
	Score int
}

// Question is a multiple-choice item in one category. Answers are ordered
// from least to most mature.
type Question struct {
	ID       int
	Text     string
	Category Category
	Answers  []Answer
}

// Bank returns the assessment questions. The result is a fresh copy; the
// order is fixed: two questions per category in category order.
func Bank() []Question {
	out := make([]Question, len(bank))
	for i, q := range bank {
		q.Answers = append([]Answer(nil), q.Answers...)
		out[i] = q
	}
	return out
}

var bank = []Question{
	{
		ID:       1,
		Category: Governance,
		Text:     "How would you describe your project management methodology?",
		Answers: []Answer{
			{"We don't have a formal methodology; teams do what they think is best.", 1},
			{"A basic, standardized methodology is documented but not consistently followed.", 2},
			{"A tailored, standardized methodology is consistently applied across most projects.", 3},
			{"Our methodology is continuously improved with feedback and integrated across the organization.", 4},
		},
	},
	{
		ID:       2,
		Category: Governance,
		Text:     "How are project roles and responsibilities defined?",
		Answers: []Answer{
			{"They are informally discussed at the start of each project.", 1},
			{"Generic roles are defined but often unclear in practice.", 2},
			{"Clear, documented roles (like a RACI chart) are used for all major projects.", 3},
			{"Roles are clearly defined, understood, and linked to competency frameworks and training.", 4},
		},
	},
	{
		ID:       3,
		Category: ResourceManagement,
		Text:     "How do you handle resource allocation for projects?",
		Answers: []Answer{
			{"It's a reactive process; whoever is available gets assigned.", 1},
			{"We have a central list of resources, but allocation is largely manual and ad-hoc.", 2},
			{"We use a resource management tool to track availability and forecast demand.", 3},
			{"A fully integrated system aligns resource capacity, demand, and strategic priorities in real-time.", 4},
		},
	},
	{
		ID:       4,
		Category: ResourceManagement,
		Text:     "How is resource capacity planning conducted?",
		Answers: []Answer{
			{"We don't do formal capacity planning.", 1},
			{"Capacity is considered, but only for key individuals or highly specialized roles.", 2},
			{"We conduct regular capacity planning by role or team, but it's disconnected from financial planning.", 3},
			{"Capacity planning is an ongoing, strategic function, aligning workforce skills and availability with long-term business goals.", 4},
		},
	},
	{
		ID:       5,
		Category: PerformanceReporting,
		Text:     "How is project status reported to stakeholders?",
		Answers: []Answer{
			{"Status updates are informal and provided only when requested.", 1},
			{"Basic status reports (e.g., email updates) are sent out occasionally.", 2},
			{"Standardized dashboards with key metrics (scope, schedule, budget) are regularly updated and shared.", 3},
			{"Automated, real-time dashboards provide tailored views for different stakeholders, from team members to executives.", 4},
		},
	},
	{
		ID:       6,
		Category: PerformanceReporting,
		Text:     "How are project benefits and ROI measured?",
		Answers: []Answer{
			{"Benefits are discussed but not formally tracked post-project.", 1},
			{"Benefits are estimated in the business case but not verified after completion.", 2},
			{"A process is in place to track and report on the realization of project benefits after delivery.", 3},
			{"Benefits realization is actively managed and tied back to strategic objectives, influencing future portfolio decisions.", 4},
		},
	},
	{
		ID:       7,
		Category: StrategicAlignment,
		Text:     "How are new projects selected and prioritized?",
		Answers: []Answer{
			{"Based on who shouts the loudest or has the most authority.", 1},
			{"Projects are selected based on individual business cases, but there's no portfolio-level view.", 2},
			{"A formal scoring model is used to prioritize projects based on strategic criteria.", 3},
			{"Portfolio is dynamically managed, continuously re-evaluating and re-prioritizing projects against shifting strategic goals.", 4},
		},
	},
	{
		ID:       8,
		Category: StrategicAlignment,
		Text:     "How well is the PMO's value communicated to the organization?",
		Answers: []Answer{
			{"The PMO's value is not well understood and is often seen as administrative overhead.", 1},
			{"The PMO communicates its activities, but the link to business value isn't always clear.", 2},
			{"The PMO regularly reports on its contribution to project success and business objectives.", 3},
			{"The PMO is recognized as a strategic partner, and its value is demonstrated through clear, data-driven evidence of improved business outcomes.", 4},
		},
	},
	{
		ID:       9,
		Category: RiskManagement,
		Text:     "How are project risks identified and managed?",
		Answers: []Answer{
			{"Risks are discussed only when they become issues.", 1},
			{"A risk log is maintained for some projects, but it's not consistently reviewed.", 2},
			{"A formal risk management process (identify, assess, mitigate, monitor) is applied to all projects.", 3},
			{"Proactive, quantitative risk analysis is performed, and risk management is integrated into the organizational culture.", 4},
		},
	},
	{
		ID:       10,
		Category: RiskManagement,
		Text:     "How are lessons learned from projects captured and utilized?",
		Answers: []Answer{
			{"Lessons learned are rarely discussed or documented.", 1},
			{"A post-project review is held, but the findings are not stored centrally or shared.", 2},
			{"Lessons learned are documented in a central repository, and project managers are encouraged to review them.", 3},
			{"There is an active process to analyze lessons learned, identify trends, and systematically update processes and standards.", 4},
		},
	},
}
