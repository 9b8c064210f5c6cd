package catalog

import "SchoolPick/entity"

const allLabel = "전체"

var reasons = []entity.Reason{
	{Code: "traffic", Label: "🚌 교통"},
	{Code: "academic", Label: "🕹️ 학업 분위기"},
	{Code: "grade", Label: "💡 내신 전략"},
	{Code: "facility", Label: "🏫 시설"},
	{Code: "employment", Label: "🏢 취업"},
	{Code: "document", Label: "📜 생기부 관리"},
	{Code: "others", Label: "기타"},
}

var gwangmyeongSchools = []entity.School{
	entity.NewSchool("gwangmyeong", "광명고등학교", 37.47857117, 126.8659896,
		"경기도 광명시 철산동에 위치한 남녀공학 공립 일반계 고등학교로, 광명시 관내 고등학교 중에서는 가장 오래된 학교이다. 1975년 3월 1일에 개교했고 1983년 5월 14일에 현재 자리로 이전하였으며, 2001년부터 남녀 공학으로 첫 입학생을 받았다.",
		"https://namu.wiki/w/%EA%B4%91%EB%AA%85%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90(%EA%B2%BD%EA%B8%B0)"),
	entity.NewSchool("gwangmyeongbuk", "광명북고등학교", 37.487906, 126.8679386,
		"경기도 광명시에 위치한 공립 고등학교다. 광명시 고등학교 중 가장 북쪽에 위치하고 있으며 바로 옆에 광명북중학교, 맞은편에 광명북초등학교가 있다. 가장 가까운 번화가인 철산상업지구가 걸어서 15분 정도이다.",
		"https://namu.wiki/w/%EA%B4%91%EB%AA%85%EB%B6%81%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90"),
	entity.NewSchool("gwangmun", "광문고등학교", 37.46462137, 126.8495912,
		"경기도 광명시 광명동에 위치한 공립 일반계 고등학교이다. 광명시 내에서 교육과정 클러스터를 하는 세 학교 광문고등학교, 광명북고등학교, 명문고등학교 중 하나로 사회(국제경제) 클러스터를 운영한다.",
		"https://namu.wiki/w/%EA%B4%91%EB%AC%B8%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90"),
	entity.NewSchool("gwanghwi", "광휘고등학교", 37.4290157, 126.8818263,
		"2013년 3월 1일 설립된 경기도 광명시에 위치한 일반계 단설 공립 고등학교이다.",
		"https://namu.wiki/w/%EA%B4%91%ED%9C%98%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90"),
	entity.NewSchool("myeongmun", "명문고등학교", 37.47057166, 126.8498885,
		"경기도 광명시 광명6동에 위치한 공립 고등학교이다. 1976년 광명여자고등학교로 개교하였고 2004년 1월 남녀 공학 명문고등학교로 교명을 변경하였다.",
		"https://namu.wiki/w/%EB%AA%85%EB%AC%B8%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90"),
	entity.NewSchool("soha", "소하고등학교", 37.44724606, 126.8875821,
		"경기도 광명시 소하1동에 위치한 공립 고등학교이다. 외국어 중점 학교로 과학탐구, 사회탐구 계열 이외에 국제화 중점이 있다.",
		"https://namu.wiki/w/%EC%86%8C%ED%95%98%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90"),
	entity.NewSchool("unsan", "운산고등학교", 37.45431392, 126.8833501,
		"2011년 개교한 경기도 광명시의 일반계 고등학교로, 경기도 교육청 지정 혁신학교이다. 학생 주도적인 학교 시스템과 수업을 만들어 나가고 있다.",
		"https://namu.wiki/w/%EC%9A%B4%EC%82%B0%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90"),
	entity.NewSchool("jinsung", "진성고등학교", 37.46950279, 126.8767614,
		"경기도 광명시 철망산로 84(하안동)에 위치한 사립 일반계 기숙사 고등학교이다. 학교 프로그램이 많아 학생부종합전형 실적이 좋다.",
		"https://namu.wiki/w/%EC%A7%84%EC%84%B1%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90"),
	entity.NewSchool("chunghyeon", "충현고등학교", 37.43295996, 126.8845281,
		"경기도 광명시 소하2동에 위치한 일반계 고등학교인 동시에 예술중점고등학교이다. 학년별로 급식실이 따로 있다.",
		"https://namu.wiki/w/%EC%B6%A9%ED%98%84%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90"),
	entity.NewSchool("hanggong", "경기항공고등학교", 37.47331347, 126.8570351,
		"경기도 광명시 광명7동에 위치한 사립 특성화 고등학교로 2017년 산학일체형 도제학교로 지정되었다. 학과: 항공전기전자과, 항공영상미디어과, 로봇자동화과, 인테리어리모델링과.",
		"https://namu.wiki/w/%EA%B2%BD%EA%B8%B0%ED%95%AD%EA%B3%B5%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90"),
	entity.NewSchool("chang", "창의경영고등학교", 37.4383574, 126.8821568,
		"경기도 광명시 소하2동에 위치한 공립 특성화고등학교이다. 스마트회계, 스마트IT, 인플루언서 마케팅, 스포츠 경영, 관광경영, 콘텐츠디자인 과로 나뉜다.",
		"https://namu.wiki/w/%EC%B0%BD%EC%9D%98%EA%B2%BD%EC%98%81%EA%B3%A0%EB%93%B1%ED%95%99%EA%B5%90"),
}
