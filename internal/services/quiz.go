package services

import "fmt"

// QuizQuestion is one multiple-choice question of the job quiz. Correct is
// the index into Answers.
type QuizQuestion struct {
	Text    string
	Answers []string
	Correct int
}

var jobQuizBank = []QuizQuestion{
	{"What account is used for daily expenses?", []string{"Savings", "Retirement", "Spending", "Term Deposit"}, 2},
	{"According to the 50/30/20 rule, what percentage of your income should be used for needs?", []string{"50%", "30%", "20%", "10%"}, 0},
	{"What is the primary purpose of a savings account?", []string{"To pay monthly bills", "To grow emergency funds", "To make stock investments", "To pay off loans"}, 1},
	{"What is considered a liability?", []string{"Savings account", "Mortgage loan", "Car value", "Monthly income"}, 1},
	{"What is a budget?", []string{"A plan for spending and saving money", "An account for retirement savings", "A type of tax refund", "An investment portfolio"}, 0},
	{"What is the purpose of an emergency fund?", []string{"To invest in stocks", "To cover unexpected expenses", "To pay monthly rent", "To save for retirement"}, 1},
	{"What does APR stand for?", []string{"Annual Percentage Rate", "Annual Payment Ratio", "Average Profit Return", "Accumulated Payment Reserve"}, 0},
	{"What is the first step in creating a budget?", []string{"Track your income", "Calculate your monthly expenses", "Set financial goals", "Open a savings account"}, 0},
	{"What is the 50/30/20 rule used for?", []string{"Tracking your diet", "Creating a personal budget", "Managing investments", "Saving for retirement"}, 1},
	{"What type of account is best for long-term savings?", []string{"Checking account", "Savings account", "Certificate of deposit (CD)", "Retirement account"}, 2},
	{"What is compound interest?", []string{"Interest earned on the principal only", "Interest earned on the principal and previously earned interest", "A penalty fee for late payments", "A tax on savings"}, 1},
	{"Which is a good way to avoid unnecessary spending?", []string{"Paying with cash", "Buying on impulse", "Using a credit card for every purchase", "Avoiding a budget"}, 0},
	{"What does a credit score measure?", []string{"Your income level", "Your ability to repay loans", "Your spending habits", "Your tax payments"}, 1},
	{"Why should you check your bank statements regularly?", []string{"To see your credit score", "To check for errors or unauthorized transactions", "To apply for a loan", "To close your account"}, 1},
	{"What is one advantage of using a debit card over a credit card?", []string{"It helps build credit", "It avoids interest charges", "It offers cashback rewards", "It has a higher spending limit"}, 1},
	{"What is a good rule of thumb for saving money?", []string{"Save 10-15% of your income", "Save all your leftover money", "Only save when you get a bonus", "Save only for big purchases"}, 0},
	{"What is the purpose of a credit card limit?", []string{"To encourage spending", "To set a maximum amount you can borrow", "To track your purchases", "To calculate your interest rate"}, 1},
	{"What is the safest way to build credit?", []string{"Max out your credit card", "Pay your credit card bills on time", "Open as many accounts as possible", "Use only cash for purchases"}, 1},
	{"What does 'living within your means' mean?", []string{"Spending less than you earn", "Earning more than you spend", "Spending everything you earn", "Borrowing money to pay bills"}, 0},
	{"What is the benefit of setting financial goals?", []string{"It allows you to avoid budgeting", "It keeps you focused and helps you prioritize spending", "It guarantees wealth", "It eliminates financial risks"}, 1},
	{"What is an example of a variable expense?", []string{"Utilities", "Car payment", "Gym membership", "Groceries"}, 3},
	{"Why is it important to have a good credit score?", []string{"To qualify for higher salaries", "To get better loan and credit card terms", "To avoid taxes", "To avoid paying bills"}, 1},
	{"What is one way to save on monthly expenses?", []string{"Ignore your budget", "Shop around for better insurance rates", "Always eat out", "Use only cash"}, 1},
	{"Which of these is an example of 'paying yourself first'?", []string{"Investing in stocks", "Saving a portion of your income before spending", "Paying your rent on time", "Buying groceries"}, 1},
	{"What is the difference between a need and a want?", []string{"A need is necessary for survival; a want is not", "A want is more expensive than a need", "A need is a one-time expense; a want is recurring", "A want is always a luxury item"}, 0},
}

// QuizBank returns a copy of the job quiz questions.
func QuizBank() []QuizQuestion {
	out := make([]QuizQuestion, len(jobQuizBank))
	for i, q := range jobQuizBank {
		out[i] = q.clone()
	}
	return out
}

func (q QuizQuestion) clone() QuizQuestion {
	q.Answers = append([]string(nil), q.Answers...)
	return q
}

// shuffled returns the question with its answers reordered and Correct
// pointing at the same answer.
func (q QuizQuestion) shuffled(r Rand) QuizQuestion {
	out := q.clone()
	r.Shuffle(len(out.Answers), func(i, j int) {
		out.Answers[i], out.Answers[j] = out.Answers[j], out.Answers[i]
		switch out.Correct {
		case i:
			out.Correct = j
		case j:
			out.Correct = i
		}
	})
	return out
}

// DrawQuiz picks n distinct questions from bank with shuffled answers.
func DrawQuiz(r Rand, bank []QuizQuestion, n int) ([]QuizQuestion, error) {
	if n < 1 || n > len(bank) {
		return nil, fmt.Errorf("cannot draw %d questions from a bank of %d", n, len(bank))
	}
	idx := make([]int, len(bank))
	for i := range idx {
		idx[i] = i
	}
	r.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	round := make([]QuizQuestion, 0, n)
	for _, i := range idx[:n] {
		round = append(round, bank[i].shuffled(r))
	}
	return round, nil
}

// ScoreQuiz counts the answers matching each question's correct index.
// Missing answers count as wrong.
func ScoreQuiz(round []QuizQuestion, answers []int) int {
	correct := 0
	for i, q := range round {
		if i < len(answers) && answers[i] == q.Correct {
			correct++
		}
	}
	return correct
}
