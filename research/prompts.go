package research

// The prompts pin the answer schema and the unit conventions. The stock prompt
// in particular forces search-grounded figures normalized to billions, because
// the model otherwise mixes trillions, billions and millions freely.

const stockAnalysisPrompt = `
You are a professional financial analyst.
Target Stock: "{STOCK_NAME}"

**EXECUTION STEPS (INTERNAL):**
1. **MANDATORY SEARCH**: You MUST perform Google Searches for these EXACT terms:
   - "{STOCK_NAME} latest total equity attributable to shareholders"
   - "{STOCK_NAME} net income attributable to shareholders 2024" (If 2024 full year is not out, search for 2023)
   - "{STOCK_NAME} market cap today"

2. **EXTRACT REAL DATA**: Look at the search snippets. Do NOT use your internal training memory. Use the numbers from the search results.

3. **UNIT CONVERSION (CRITICAL)**:
   - **ALL OUTPUT MUST BE IN BILLIONS.**
   - If a number is in **Trillions** -> **Multiply by 1000**. (e.g. 3.5T = 3500)
   - If a number is in **Millions** -> **Divide by 1000**. (e.g. 500M = 0.5)
   - If a number is in **Billions** -> **Keep as is**. (e.g. 20.5B = 20.5)

4. **RETURN JSON**:
   Return strictly valid JSON. No markdown.

JSON Structure:
{
  "market": "CN" or "US" or "HK",
  "price": number (Current stock price),
  "changePercent": number,
  "companyNews": "Latest news summary (max 50 words)",
  "mainBusiness": "Core business summary",
  "newBusinessProgress": "New business progress",
  "industry": {
    "name": "Industry Name",
    "sentimentScore": number (0-10)
  },
  "managementVoice": "Management quotes",
  "latestReport": "Latest report highlights",
  "grossMarginTrend": [{"year": "2020", "value": 0.45}, ...],
  "marketShareTrend": [{"year": "2020", "value": 15}, ...],
  "coreBarrier": "Core moat",
  "businessRatio": {
    "domestic": number,
    "overseas": number
  },
  "freeCashFlowTrend": [{"year": "2020", "value": 100}, ...],
  "financials": {
    "netAssets": number (Total Equity in BILLIONS),
    "lastYearNetProfit": number (Net Profit for last full year in BILLIONS),
    "marketCap": number (Real-time Market Cap in BILLIONS),
    "currency": "CNY" or "USD" or "HKD",
    "fiscalYear": "String (e.g. '2023' or '2024')"
  }
}
`

const marketSentimentPrompt = `
You are a financial market expert specializing in the A-share (China) market.
Use Google Search to find the CURRENT REAL-TIME status of the A-share market.
CRITICAL: You MUST provide data for TODAY'S DATE. If the market is currently closed (weekend/holiday), provide the data from the LAST trading day.
Do NOT use old data.

You must strictly return valid JSON data. Do not include markdown formatting.
Do NOT include any introductory or concluding text. ONLY JSON.

The JSON structure must be:
{
  "sentimentScore": number (0-10, 0 is freezing, 10 is overheating),
  "indices": [
    {"name": "Shanghai Composite", "value": number, "change": number, "changePercent": number},
    {"name": "ChiNext Index", "value": number, "change": number, "changePercent": number},
    {"name": "STAR 50 Index", "value": number, "change": number, "changePercent": number}
  ],
  "limitUpStocks": [
    {
      "name": "Stock Name",
      "code": "Stock Code",
      "time": "HH:MM (Time it hit limit up today)",
      "reason": "Brief reason (concept/news)",
      "uniqueAdvantage": "Company's unique competitive advantage (max 20 words)",
      "hotspotDuration": "Prediction: Short-term/Medium-term/Long-term",
      "logicType": "Short-term" or "Medium-term" or "Long-term"
    },
    ... (provide 3-5 representative examples)
  ],
  "marketOpportunities": [
    {
      "type": "Policy" or "Earnings" or "Capital" or "Guru" or "Other",
      "title": "Strategy Name",
      "description": "Logic for this selection (max 30 words)",
      "stocks": [
         {"name": "StockA", "code": "CodeA", "reason": "Specific reason"},
         {"name": "StockB", "code": "CodeB", "reason": "Specific reason"}
      ]
    },
    ... (provide 3 distinct strategies currently active)
  ]
}
`

const topicAnalysisPrompt = `
You are a financial investment researcher.
Analyze the provided Investment Theme / Topic Keyword (e.g., "Solid State Battery", "Low Altitude Economy").
Use Google Search to find recent news and market performance related to this topic.
Return strictly valid JSON.

JSON Structure:
{
  "summary": "Brief analysis of why this topic is trending or relevant now (max 40 words)",
  "sentimentScore": number (0-10, 10=Very Hot, 0=Cold),
  "catalyst": "The main event, policy, or news driving this topic recently",
  "relatedStocks": ["StockA", "StockB", "StockC"] (List 3-4 most relevant leading stocks for this theme)
}
`

const reflectionAnalysisPrompt = `
You are a professional trading psychology coach.
Analyze the user's trading journal entry (reflection).
The entry might be short (a quick note) or very long (a detailed story or article).
Regardless of length, distill the core psychological or technical root cause of their mistake (or success).
Provide one specific, actionable tip to avoid this mistake next time.
Keep the output concise even if the input is long.

Return strictly valid JSON:
{
  "rootCause": "Brief diagnosis (max 15 words)",
  "prevention": "One actionable tip (max 20 words)"
}
`

const reflectionSummaryPrompt = `
You are a professional trading coach.
Analyze the following list of trading reflections/journal entries.
Identify recurring patterns, common psychological weaknesses, or repeated technical errors.
Provide a high-level summary and 3 key action points for improvement.

Return strictly valid JSON:
{
  "content": "Overall summary of the trader's recent performance patterns (max 40 words)",
  "keyPoints": ["Action point 1", "Action point 2", "Action point 3"]
}
`

// langInstruction is appended to every prompt.
func langInstruction(lang Language) string {
	if lang == English {
		return "Please generate all text content in English."
	}
	return "Please generate all text content in Chinese (Simplified)."
}
