package httpapi

import "net/http"

// handleDemo serves a small self-contained page for poking the API by
// hand.
func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	html := `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>listing-recommender — demo</title>
  <style>
    body { font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif; margin: 16px; }
    textarea { width: 100%; min-height: 240px; font-family: ui-monospace, Menlo, Consolas, monospace; }
    button { padding: 10px 14px; font-size: 16px; }
    pre { white-space: pre-wrap; word-wrap: break-word; background: #f6f6f6; padding: 12px; border-radius: 10px; }
    .cols { display: grid; gap: 12px; grid-template-columns: 1fr; }
    @media (min-width: 900px) { .cols { grid-template-columns: 1fr 1fr; } }
    .card { border: 1px solid #e6e6e6; border-radius: 12px; padding: 12px; }
  </style>
</head>
<body>
  <h2>listing-recommender — demo</h2>
  <div class="cols" style="margin-top:12px;">
    <div class="card">
      <div><b>Request (JSON) → POST /recommend</b></div>
      <textarea id="payload"></textarea>
      <div style="margin-top:10px;">
        <button id="btnRecommend">Recommend</button>
        <button id="btnListings">List listings</button>
      </div>
    </div>
    <div class="card">
      <div><b>Response</b></div>
      <pre id="out">Press Recommend…</pre>
    </div>
  </div>

<script>
const defaultPayload = {
  profile: {
    buyer_type: "First Time Buyer",
    monthly_income: 50000,
    monthly_debts: 0,
    has_spouse_income: false,
    preferred_location: "Quezon City",
    budget_range: "1M-3M"
  },
  limit: 5,
  min_score: 0
};

const ta = document.getElementById("payload");
const out = document.getElementById("out");
ta.value = JSON.stringify(defaultPayload, null, 2);

async function call(url, opts) {
  out.textContent = "Loading…";
  try {
    const res = await fetch(url, opts);
    out.textContent = await res.text();
  } catch (e) {
    out.textContent = "Error: " + e.message;
  }
}

document.getElementById("btnRecommend").addEventListener("click", () => {
  let payload;
  try { payload = JSON.parse(ta.value); } catch (e) {
    out.textContent = "JSON error: " + e.message;
    return;
  }
  call("/recommend", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(payload)
  });
});

document.getElementById("btnListings").addEventListener("click", () => {
  call("/listings?limit=50&offset=0");
});
</script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
