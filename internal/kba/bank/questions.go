package bank

import "guardian/internal/kba"

// defaultCatalog is the built-in bilingual question pool. Prompts target
// knowledge adults routinely have and children under 13 generally do not
// (credit, taxes, civic facts). Content review happens with compliance before
// any edit here.
var defaultCatalog = []kba.Question{
	{
		ID:           "fin_001",
		Category:     kba.CategoryFinancial,
		Prompt:       "What is the typical credit score range in the United States?",
		PromptKo:     "미국에서 일반적인 신용 점수 범위는 무엇입니까?",
		Options:      []string{"100-500", "300-850", "0-1000", "500-1500"},
		OptionsKo:    []string{"100-500", "300-850", "0-1000", "500-1500"},
		CorrectIndex: 1,
		Difficulty:   kba.DifficultyMedium,
	},
	{
		ID:       "fin_002",
		Category: kba.CategoryFinancial,
		Prompt:   "What does APR stand for in financial terms?",
		PromptKo: "금융 용어에서 APR은 무엇을 의미합니까?",
		Options: []string{
			"Annual Percentage Rate",
			"Applied Payment Return",
			"Automatic Payment Reduction",
			"Account Processing Rate",
		},
		OptionsKo: []string{
			"연간 이자율 (Annual Percentage Rate)",
			"적용 지불 반환",
			"자동 지불 감소",
			"계정 처리율",
		},
		CorrectIndex: 0,
		Difficulty:   kba.DifficultyEasy,
	},
	{
		ID:           "fin_003",
		Category:     kba.CategoryFinancial,
		Prompt:       "What is the standard term length for a typical US mortgage?",
		PromptKo:     "미국 일반 주택담보대출의 표준 기간은 얼마입니까?",
		Options:      []string{"10 years", "15 years", "30 years", "50 years"},
		OptionsKo:    []string{"10년", "15년", "30년", "50년"},
		CorrectIndex: 2,
		Difficulty:   kba.DifficultyMedium,
	},
	{
		ID:       "fin_004",
		Category: kba.CategoryFinancial,
		Prompt:   "What is a W-2 form used for in the United States?",
		PromptKo: "미국에서 W-2 양식은 무엇에 사용됩니까?",
		Options: []string{
			"Applying for a passport",
			"Reporting wages and taxes withheld",
			"Registering a vehicle",
			"Voting registration",
		},
		OptionsKo:    []string{"여권 신청", "임금 및 원천징수 세금 신고", "차량 등록", "유권자 등록"},
		CorrectIndex: 1,
		Difficulty:   kba.DifficultyMedium,
	},
	{
		ID:           "fin_005",
		Category:     kba.CategoryFinancial,
		Prompt:       "What is the FDIC insurance limit per depositor per bank?",
		PromptKo:     "FDIC 보험의 예금자당 은행당 한도는 얼마입니까?",
		Options:      []string{"$100,000", "$150,000", "$250,000", "$500,000"},
		OptionsKo:    []string{"$100,000", "$150,000", "$250,000", "$500,000"},
		CorrectIndex: 2,
		Difficulty:   kba.DifficultyHard,
	},
	{
		ID:           "id_001",
		Category:     kba.CategoryIdentity,
		Prompt:       "How many digits are in a US Social Security Number?",
		PromptKo:     "미국 사회보장번호는 몇 자리입니까?",
		Options:      []string{"7", "9", "11", "13"},
		OptionsKo:    []string{"7자리", "9자리", "11자리", "13자리"},
		CorrectIndex: 1,
		Difficulty:   kba.DifficultyEasy,
	},
	{
		ID:       "id_002",
		Category: kba.CategoryIdentity,
		Prompt:   "What document is typically required to open a bank account in the US?",
		PromptKo: "미국에서 은행 계좌를 개설할 때 일반적으로 필요한 서류는 무엇입니까?",
		Options: []string{
			"Birth certificate only",
			"Government-issued photo ID",
			"High school diploma",
			"Library card",
		},
		OptionsKo:    []string{"출생증명서만", "정부 발급 사진 ID", "고등학교 졸업장", "도서관 카드"},
		CorrectIndex: 1,
		Difficulty:   kba.DifficultyEasy,
	},
	{
		ID:           "id_003",
		Category:     kba.CategoryIdentity,
		Prompt:       "What is the minimum age to get a driver license in most US states?",
		PromptKo:     "대부분의 미국 주에서 운전면허를 취득할 수 있는 최소 연령은?",
		Options:      []string{"14", "16", "18", "21"},
		OptionsKo:    []string{"14세", "16세", "18세", "21세"},
		CorrectIndex: 1,
		Difficulty:   kba.DifficultyMedium,
	},
	{
		ID:           "hist_001",
		Category:     kba.CategoryHistorical,
		Prompt:       "In what year did the United States declare independence?",
		PromptKo:     "미국이 독립을 선언한 해는?",
		Options:      []string{"1765", "1776", "1789", "1812"},
		OptionsKo:    []string{"1765년", "1776년", "1789년", "1812년"},
		CorrectIndex: 1,
		Difficulty:   kba.DifficultyEasy,
	},
	{
		ID:       "hist_002",
		Category: kba.CategoryHistorical,
		Prompt:   "Who was the first President of the United States?",
		PromptKo: "미국의 초대 대통령은 누구입니까?",
		Options: []string{
			"Thomas Jefferson",
			"Abraham Lincoln",
			"George Washington",
			"John Adams",
		},
		OptionsKo:    []string{"토머스 제퍼슨", "에이브러햄 링컨", "조지 워싱턴", "존 애덤스"},
		CorrectIndex: 2,
		Difficulty:   kba.DifficultyEasy,
	},
	{
		ID:           "geo_001",
		Category:     kba.CategoryGeographic,
		Prompt:       "What is the capital of the United States?",
		PromptKo:     "미국의 수도는 어디입니까?",
		Options:      []string{"New York", "Los Angeles", "Washington D.C.", "Chicago"},
		OptionsKo:    []string{"뉴욕", "로스앤젤레스", "워싱턴 D.C.", "시카고"},
		CorrectIndex: 2,
		Difficulty:   kba.DifficultyEasy,
	},
	{
		ID:           "geo_002",
		Category:     kba.CategoryGeographic,
		Prompt:       "How many states are in the United States?",
		PromptKo:     "미국에는 몇 개의 주가 있습니까?",
		Options:      []string{"48", "50", "51", "52"},
		OptionsKo:    []string{"48개", "50개", "51개", "52개"},
		CorrectIndex: 1,
		Difficulty:   kba.DifficultyEasy,
	},
	{
		ID:           "legal_001",
		Category:     kba.CategoryLegal,
		Prompt:       "What is the minimum voting age in the United States?",
		PromptKo:     "미국의 최소 투표 연령은?",
		Options:      []string{"16", "18", "21", "25"},
		OptionsKo:    []string{"16세", "18세", "21세", "25세"},
		CorrectIndex: 1,
		Difficulty:   kba.DifficultyEasy,
	},
	{
		ID:           "legal_002",
		Category:     kba.CategoryLegal,
		Prompt:       "What is the legal drinking age in the United States?",
		PromptKo:     "미국의 법정 음주 연령은?",
		Options:      []string{"16", "18", "19", "21"},
		OptionsKo:    []string{"16세", "18세", "19세", "21세"},
		CorrectIndex: 3,
		Difficulty:   kba.DifficultyEasy,
	},
	{
		ID:       "legal_003",
		Category: kba.CategoryLegal,
		Prompt:   "What is typically required to serve on a jury in the US?",
		PromptKo: "미국에서 배심원으로 봉사하기 위해 일반적으로 필요한 것은?",
		Options: []string{
			"US citizenship and minimum age 18",
			"College degree",
			"Home ownership",
			"Military service",
		},
		OptionsKo:    []string{"미국 시민권 및 최소 18세", "대학 학위", "주택 소유", "군 복무"},
		CorrectIndex: 0,
		Difficulty:   kba.DifficultyMedium,
	},
}
